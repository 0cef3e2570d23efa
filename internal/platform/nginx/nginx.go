// Package nginx manages reverse proxy site configuration activation.
package nginx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imamik/dapphost/pkg/system"
)

// Default Debian nginx configuration layout.
const (
	DefaultSitesAvailable = "/etc/nginx/sites-available"
	DefaultSitesEnabled   = "/etc/nginx/sites-enabled"

	// defaultSiteName is the distribution catch-all site removed on activation.
	defaultSiteName = "default"
)

// Proxy installs and activates nginx site configurations.
type Proxy struct {
	runner system.Runner

	SitesAvailable string
	SitesEnabled   string
}

// NewProxy creates a Proxy using the standard Debian directory layout.
func NewProxy(runner system.Runner) *Proxy {
	return &Proxy{
		runner:         runner,
		SitesAvailable: DefaultSitesAvailable,
		SitesEnabled:   DefaultSitesEnabled,
	}
}

// InstallSite writes a site configuration and activates it atomically.
//
// The content is written to a staging path first and the enabled link is
// pointed at it only for validation. On validation failure the previous
// link is restored and the previously active site file is left untouched;
// the live proxy is never reloaded with a broken configuration.
func (p *Proxy) InstallSite(ctx context.Context, name string, content []byte) error {
	staged := filepath.Join(p.SitesAvailable, name+".staged")
	final := filepath.Join(p.SitesAvailable, name)
	link := filepath.Join(p.SitesEnabled, name)

	if err := os.WriteFile(staged, content, 0o644); err != nil {
		return fmt.Errorf("writing staged site config: %w", err)
	}

	prevTarget, err := os.Readlink(link)
	hadLink := err == nil

	if err := relink(link, staged); err != nil {
		return fmt.Errorf("staging site link: %w", err)
	}

	if err := p.Validate(ctx); err != nil {
		// Roll the link back; the previously active file was never touched.
		_ = os.Remove(link)
		if hadLink {
			_ = os.Symlink(prevTarget, link)
		}
		_ = os.Remove(staged)
		return fmt.Errorf("proxy config validation failed: %w", err)
	}

	if err := os.Rename(staged, final); err != nil {
		return fmt.Errorf("promoting staged site config: %w", err)
	}
	if err := relink(link, final); err != nil {
		return fmt.Errorf("activating site link: %w", err)
	}

	// The distribution catch-all would shadow our routes on some requests.
	_ = os.Remove(filepath.Join(p.SitesEnabled, defaultSiteName))

	if err := p.Reload(ctx); err != nil {
		return err
	}
	return nil
}

// Validate checks the full nginx configuration syntactically.
func (p *Proxy) Validate(ctx context.Context) error {
	if _, err := p.runner.Run(ctx, "nginx", "-t"); err != nil {
		return err
	}
	return nil
}

// Reload signals the live proxy to pick up the active configuration.
func (p *Proxy) Reload(ctx context.Context) error {
	if _, err := p.runner.Run(ctx, "systemctl", "reload", "nginx"); err != nil {
		return fmt.Errorf("reloading proxy: %w", err)
	}
	return nil
}

// SiteActive reports whether the named site is linked into the enabled set.
func (p *Proxy) SiteActive(name string) bool {
	target, err := os.Readlink(filepath.Join(p.SitesEnabled, name))
	if err != nil {
		return false
	}
	if _, err := os.Stat(target); err != nil {
		return false
	}
	return true
}

// ActiveSiteContent returns the content of the named active site file.
func (p *Proxy) ActiveSiteContent(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(p.SitesAvailable, name))
}

// relink atomically repoints link at target, replacing any existing link.
func relink(link, target string) error {
	if err := os.Remove(link); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Symlink(target, link)
}
