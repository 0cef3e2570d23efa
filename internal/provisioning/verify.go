package provisioning

import "fmt"

// verifyStep summarizes the provisioned state. It is purely advisory: the
// run already succeeded by the time it executes, and nothing it finds can
// change the exit code.
type verifyStep struct{}

func (s *verifyStep) Name() string { return "verify" }

func (s *verifyStep) Satisfied(_ *Context) (bool, error) {
	return false, nil
}

func (s *verifyStep) Run(ctx *Context) error {
	services, err := ctx.Supervisor.List(ctx)
	if err != nil {
		LogWarning(ctx.Observer, s.Name(), fmt.Sprintf("could not list supervised services: %v", err))
	} else {
		ctx.State.Services = services
		for _, svc := range services {
			ctx.Observer.Printf("service %s: %s (pid %d, %d restarts)",
				svc.Name, svc.Status, svc.PID, svc.Restarts)
		}
	}

	if ctx.Prober != nil {
		results := ctx.Prober.All(ctx)
		ctx.State.Probes = results
		for _, res := range results {
			if res.OK {
				ctx.Observer.Printf("probe %s: ok (%s)", res.Name, res.Detail)
			} else {
				LogWarning(ctx.Observer, s.Name(), fmt.Sprintf("probe %s: %s", res.Name, res.Detail))
			}
		}
	}

	return nil
}
