package provisioning

import "fmt"

// runtimeStep installs the JavaScript runtime and the process supervisor.
type runtimeStep struct{}

func (s *runtimeStep) Name() string { return "runtime" }

func (s *runtimeStep) Satisfied(ctx *Context) (bool, error) {
	return ctx.Runtime.SatisfiesMajor(ctx, ctx.Config.Runtime.NodeMajor) &&
		ctx.Runtime.SupervisorInstalled(), nil
}

func (s *runtimeStep) Run(ctx *Context) error {
	major := ctx.Config.Runtime.NodeMajor

	if ctx.Runtime.SatisfiesMajor(ctx, major) {
		LogResourceExists(ctx.Observer, s.Name(), "runtime", fmt.Sprintf("node >= %d", major))
	} else {
		if err := ctx.Runtime.Install(ctx, major); err != nil {
			return err
		}
		if !ctx.Runtime.SatisfiesMajor(ctx, major) {
			return fmt.Errorf("node %d install did not take effect", major)
		}
		LogResourceCreated(ctx.Observer, s.Name(), "runtime", fmt.Sprintf("node %d", major))
	}

	if ctx.Runtime.SupervisorInstalled() {
		LogResourceExists(ctx.Observer, s.Name(), "supervisor", "pm2")
		return nil
	}
	if err := ctx.Runtime.InstallSupervisor(ctx); err != nil {
		return err
	}
	if !ctx.Runtime.SupervisorInstalled() {
		return fmt.Errorf("supervisor install did not take effect")
	}
	LogResourceCreated(ctx.Observer, s.Name(), "supervisor", "pm2")
	return nil
}
