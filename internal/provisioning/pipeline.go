package provisioning

import (
	"fmt"
	"time"
)

// Run executes all provisioning steps sequentially.
//
// Each step's precondition decides whether its action runs at all; steps
// whose end-state already holds are logged as already satisfied and
// skipped. The first failing fatal step aborts the whole run with the step
// name wrapped into the error. Best-effort steps log their failure and the
// run continues.
func Run(ctx *Context, steps []Step) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d steps...", len(steps))

	for i, step := range steps {
		stepStart := time.Now()
		label := fmt.Sprintf("%s (%d/%d)", step.Name(), i+1, len(steps))

		LogStepStart(ctx.Observer, label)

		satisfied, err := step.Satisfied(ctx)
		if err != nil {
			LogStepFailed(ctx.Observer, label, err)
			return fmt.Errorf("%s step precondition failed: %w", step.Name(), err)
		}
		if satisfied {
			LogStepSkipped(ctx.Observer, label)
			continue
		}

		if err := step.Run(ctx); err != nil {
			if be, ok := step.(bestEffort); ok && be.BestEffort() {
				LogWarning(ctx.Observer, label, fmt.Sprintf("continuing despite failure: %v", err))
				continue
			}
			LogStepFailed(ctx.Observer, label, err)
			return fmt.Errorf("%s step failed: %w", step.Name(), err)
		}

		LogStepComplete(ctx.Observer, label, time.Since(stepStart))
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// DefaultSteps returns the full provisioning pipeline in dependency order.
// The ordering is strict: every step depends on all prior steps.
func DefaultSteps() []Step {
	return []Step{
		&packagesStep{},
		&runtimeStep{},
		&firewallStep{},
		&storageNodeStep{},
		&storageDaemonStep{},
		&chainStep{},
		&persistStep{},
		&proxyStep{},
		&certificateStep{},
		&verifyStep{},
	}
}
