// Package apt wraps the Debian package manager behind a narrow interface.
package apt

import (
	"context"
	"fmt"

	"github.com/imamik/dapphost/pkg/system"
)

// Installer installs packages via apt-get. The package index is refreshed
// at most once per Installer lifetime.
type Installer struct {
	runner  system.Runner
	updated bool
}

// NewInstaller creates an Installer backed by the given runner.
func NewInstaller(runner system.Runner) *Installer {
	return &Installer{runner: runner}
}

// Installed reports whether a package is already present.
func (i *Installer) Installed(ctx context.Context, pkg string) bool {
	_, err := i.runner.Run(ctx, "dpkg", "-s", pkg)
	return err == nil
}

// Install installs the given packages, refreshing the index first if this
// Installer has not done so yet.
func (i *Installer) Install(ctx context.Context, pkgs ...string) error {
	if len(pkgs) == 0 {
		return nil
	}

	if !i.updated {
		if _, err := i.runner.Run(ctx, "apt-get", "update", "-q"); err != nil {
			return fmt.Errorf("refreshing package index: %w", err)
		}
		i.updated = true
	}

	args := append([]string{"install", "-y", "-q"}, pkgs...)
	if _, err := i.runner.Run(ctx, "apt-get", args...); err != nil {
		return fmt.Errorf("installing packages: %w", err)
	}
	return nil
}
