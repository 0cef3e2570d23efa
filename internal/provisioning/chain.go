package provisioning

import (
	"fmt"

	"github.com/imamik/dapphost/internal/config"
)

// chainStep bootstraps the RPC node project and registers its daemon.
// The scaffold is skipped when a project manifest already exists; the
// supervisor registration is replace-not-skip like the storage daemon's.
type chainStep struct{}

func (s *chainStep) Name() string { return "chain" }

func (s *chainStep) Satisfied(_ *Context) (bool, error) {
	return false, nil
}

func (s *chainStep) Run(ctx *Context) error {
	if ctx.Chain.Initialized() {
		LogResourceExists(ctx.Observer, s.Name(), "project", "chain scaffold")
	} else {
		if err := ctx.Chain.Scaffold(ctx); err != nil {
			return err
		}
		if !ctx.Chain.Initialized() {
			return fmt.Errorf("chain project manifest missing after scaffold")
		}
		LogResourceCreated(ctx.Observer, s.Name(), "project", "chain scaffold")
	}

	command, args := ctx.Chain.DaemonCommand()
	if err := ctx.Supervisor.Register(ctx, config.ChainServiceName, command, args, serviceRestartDelay); err != nil {
		return err
	}
	if !ctx.Supervisor.Registered(ctx, config.ChainServiceName) {
		return fmt.Errorf("service %s not registered after start", config.ChainServiceName)
	}
	ctx.State.RegisteredServices = append(ctx.State.RegisteredServices, config.ChainServiceName)
	return nil
}

// persistStep saves the supervisor's process list and registers it to
// relaunch on host boot. Re-registering boot persistence is harmless.
type persistStep struct{}

func (s *persistStep) Name() string { return "persist" }

func (s *persistStep) Satisfied(_ *Context) (bool, error) {
	return false, nil
}

func (s *persistStep) Run(ctx *Context) error {
	if err := ctx.Supervisor.Save(ctx); err != nil {
		return err
	}
	return ctx.Supervisor.Startup(ctx)
}
