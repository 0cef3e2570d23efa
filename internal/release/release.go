// Package release resolves which storage-node distribution to install.
package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// Latest requests resolution against the upstream release index.
	Latest = "latest"

	// FallbackVersion is the known-good version installed when the release
	// index cannot be reached. Favoring a stale-but-working install over a
	// failed run is deliberate policy.
	FallbackVersion = "v0.28.0"

	// DefaultIndexURL lists all published Kubo versions, oldest first.
	DefaultIndexURL = "https://dist.ipfs.tech/kubo/versions"

	lookupTimeout = 10 * time.Second
)

// Resolver looks up the newest published storage-node version.
type Resolver interface {
	Latest(ctx context.Context) (string, error)
}

// DistResolver resolves versions against the upstream distribution index.
type DistResolver struct {
	IndexURL string
	Client   *http.Client
}

// NewDistResolver creates a Resolver backed by the public release index.
func NewDistResolver() *DistResolver {
	return &DistResolver{
		IndexURL: DefaultIndexURL,
		Client:   &http.Client{Timeout: lookupTimeout},
	}
}

// Latest fetches the release index and returns its final entry.
func (r *DistResolver) Latest(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.IndexURL, nil)
	if err != nil {
		return "", fmt.Errorf("building release index request: %w", err)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching release index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release index returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading release index: %w", err)
	}

	lines := strings.Fields(strings.TrimSpace(string(body)))
	if len(lines) == 0 {
		return "", fmt.Errorf("release index is empty")
	}

	tag := lines[len(lines)-1]
	if !strings.HasPrefix(tag, "v") {
		return "", fmt.Errorf("malformed release tag %q", tag)
	}
	return tag, nil
}

// Resolve turns a configured version pin into a concrete tag. Explicit pins
// pass through untouched. "latest" triggers one bounded index lookup; any
// failure falls back to FallbackVersion rather than failing the run. The
// second return reports whether the fallback was taken.
func Resolve(ctx context.Context, resolver Resolver, pinned string) (string, bool) {
	if pinned != "" && pinned != Latest {
		return pinned, false
	}

	tag, err := resolver.Latest(ctx)
	if err != nil {
		return FallbackVersion, true
	}
	return tag, false
}
