// Package nodejs installs and probes the JavaScript runtime and its
// process supervisor.
package nodejs

import (
	"context"
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/imamik/dapphost/internal/platform/apt"
	"github.com/imamik/dapphost/pkg/system"
)

// Runtime manages the Node.js installation and the pm2 supervisor binary.
type Runtime struct {
	runner    system.Runner
	installer *apt.Installer
}

// NewRuntime creates a Runtime backed by the given runner and installer.
func NewRuntime(runner system.Runner, installer *apt.Installer) *Runtime {
	return &Runtime{runner: runner, installer: installer}
}

// MajorVersion reports the installed Node.js major version, or an error if
// the runtime is absent or reports something unparseable.
func (r *Runtime) MajorVersion(ctx context.Context) (int, error) {
	if _, err := r.runner.LookPath("node"); err != nil {
		return 0, fmt.Errorf("node runtime not installed: %w", err)
	}

	out, err := r.runner.Run(ctx, "node", "-v")
	if err != nil {
		return 0, fmt.Errorf("probing node version: %w", err)
	}

	v, err := goversion.NewVersion(strings.TrimPrefix(strings.TrimSpace(out), "v"))
	if err != nil {
		return 0, fmt.Errorf("parsing node version %q: %w", out, err)
	}
	return v.Segments()[0], nil
}

// SatisfiesMajor reports whether the installed runtime is at least the
// required major version line.
func (r *Runtime) SatisfiesMajor(ctx context.Context, major int) bool {
	got, err := r.MajorVersion(ctx)
	return err == nil && got >= major
}

// Install provisions the requested Node.js line from the NodeSource
// repository and installs it via the package manager.
func (r *Runtime) Install(ctx context.Context, major int) error {
	setup := fmt.Sprintf("curl -fsSL https://deb.nodesource.com/setup_%d.x | bash -", major)
	if _, err := r.runner.Run(ctx, "bash", "-c", setup); err != nil {
		return fmt.Errorf("configuring node repository: %w", err)
	}
	if err := r.installer.Install(ctx, "nodejs"); err != nil {
		return fmt.Errorf("installing node runtime: %w", err)
	}
	return nil
}

// SupervisorInstalled reports whether the pm2 binary is on PATH.
func (r *Runtime) SupervisorInstalled() bool {
	_, err := r.runner.LookPath("pm2")
	return err == nil
}

// InstallSupervisor installs pm2 globally through npm.
func (r *Runtime) InstallSupervisor(ctx context.Context) error {
	if _, err := r.runner.Run(ctx, "npm", "install", "-g", "pm2"); err != nil {
		return fmt.Errorf("installing supervisor: %w", err)
	}
	return nil
}
