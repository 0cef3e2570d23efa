package provisioning

import (
	"fmt"

	"github.com/imamik/dapphost/internal/proxy"
)

// proxyStep synthesizes the reverse proxy site and activates it. Route
// definitions are cheap to regenerate and must stay authoritative, so this
// step is never skipped: every run re-renders and re-validates the config.
type proxyStep struct{}

func (s *proxyStep) Name() string { return "proxy" }

func (s *proxyStep) Satisfied(_ *Context) (bool, error) {
	return false, nil
}

func (s *proxyStep) Run(ctx *Context) error {
	content, err := proxy.Synthesize(ctx.Config.Domain, proxy.DefaultRoutes())
	if err != nil {
		return err
	}

	if err := ctx.Proxy.InstallSite(ctx, ctx.Config.Domain, content); err != nil {
		return err
	}
	if !ctx.Proxy.SiteActive(ctx.Config.Domain) {
		return fmt.Errorf("site %s not active after install", ctx.Config.Domain)
	}

	ctx.State.SiteName = ctx.Config.Domain
	return nil
}

// certificateStep obtains the TLS certificate through the external CA
// client. The client itself is idempotent: issuing for an already-valid
// domain renews or no-ops, so the step always runs.
type certificateStep struct{}

func (s *certificateStep) Name() string { return "certificate" }

func (s *certificateStep) Satisfied(_ *Context) (bool, error) {
	return false, nil
}

func (s *certificateStep) Run(ctx *Context) error {
	if err := ctx.Certs.Issue(ctx, ctx.Config.Domain, ctx.Config.Email); err != nil {
		return err
	}
	if !ctx.Certs.CertificateInstalled(ctx.Config.Domain) {
		return fmt.Errorf("no certificate on disk for %s after issuance", ctx.Config.Domain)
	}
	return nil
}
