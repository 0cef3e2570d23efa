// Package system abstracts external tool invocation so provisioning logic
// can be tested without touching the real host.
package system

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes external commands on the host.
type Runner interface {
	// Run executes a command and returns its combined output. The returned
	// error carries the command's output so callers can surface tool
	// diagnostics verbatim.
	Run(ctx context.Context, name string, args ...string) (string, error)

	// LookPath reports the filesystem path of a binary, or an error if it
	// is not on PATH.
	LookPath(name string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct {
	// Env holds extra KEY=VALUE pairs appended to the inherited environment.
	Env []string
}

// NewExecRunner creates a Runner that executes commands on the local host.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	// #nosec G204 - command names and arguments come from step definitions, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}
	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		if output != "" {
			return output, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, output)
		}
		return output, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return output, nil
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
