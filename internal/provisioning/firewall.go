package provisioning

// firewallStep opens SSH and HTTP/HTTPS. A misconfigured firewall is
// recoverable after the fact and must not block service startup, so this is
// the one best-effort step: failures are logged and the run continues.
type firewallStep struct{}

func (s *firewallStep) Name() string { return "firewall" }

// BestEffort marks firewall failures as non-fatal.
func (s *firewallStep) BestEffort() bool { return true }

// Satisfied always reports false: the rules are additive and cheap, and
// re-applying them converges to the same state.
func (s *firewallStep) Satisfied(_ *Context) (bool, error) {
	return false, nil
}

func (s *firewallStep) Run(ctx *Context) error {
	return ctx.Firewall.AllowBaseline(ctx)
}
