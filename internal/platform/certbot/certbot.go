// Package certbot wraps the certificate authority client.
package certbot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imamik/dapphost/pkg/system"
)

// DefaultLiveDir is where certbot keeps active certificates.
const DefaultLiveDir = "/etc/letsencrypt/live"

// Client issues publicly-trusted certificates via certbot.
type Client struct {
	runner system.Runner

	LiveDir string
}

// NewClient creates a certbot Client backed by the given runner.
func NewClient(runner system.Runner) *Client {
	return &Client{runner: runner, LiveDir: DefaultLiveDir}
}

// Issue requests a certificate for the domain and rewires the active proxy
// configuration for HTTPS with an HTTP redirect. Calling it for an
// already-valid domain renews or no-ops; certbot's own timer handles the
// ongoing renewal cadence. DNS for the domain must already resolve to this
// host and port 80 must be publicly reachable (operator responsibility).
func (c *Client) Issue(ctx context.Context, domain, email string) error {
	_, err := c.runner.Run(ctx, "certbot",
		"--nginx",
		"-d", domain,
		"-m", email,
		"--agree-tos",
		"--non-interactive",
		"--redirect",
	)
	if err != nil {
		return fmt.Errorf("issuing certificate for %s: %w", domain, err)
	}
	return nil
}

// CertificateInstalled reports whether a live certificate exists for the
// domain. Presence is the issuance step's post-condition; validity windows
// are certbot's concern.
func (c *Client) CertificateInstalled(domain string) bool {
	_, err := os.Stat(filepath.Join(c.LiveDir, domain, "fullchain.pem"))
	return err == nil
}
