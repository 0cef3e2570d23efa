// Package ufw applies firewall rules through the uncomplicated firewall.
package ufw

import (
	"context"
	"fmt"

	"github.com/imamik/dapphost/pkg/system"
)

// Firewall opens the ports the provisioned host needs.
type Firewall struct {
	runner system.Runner
}

// NewFirewall creates a Firewall backed by the given runner.
func NewFirewall(runner system.Runner) *Firewall {
	return &Firewall{runner: runner}
}

// AllowBaseline permits SSH and HTTP/HTTPS, then enables the firewall.
// Rules are additive and re-applying them is harmless.
func (f *Firewall) AllowBaseline(ctx context.Context) error {
	rules := [][]string{
		{"allow", "OpenSSH"},
		{"allow", "80/tcp"},
		{"allow", "443/tcp"},
	}
	for _, rule := range rules {
		if _, err := f.runner.Run(ctx, "ufw", rule...); err != nil {
			return fmt.Errorf("applying firewall rule %v: %w", rule, err)
		}
	}

	if _, err := f.runner.Run(ctx, "ufw", "--force", "enable"); err != nil {
		return fmt.Errorf("enabling firewall: %w", err)
	}
	return nil
}
