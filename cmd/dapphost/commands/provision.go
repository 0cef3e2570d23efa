package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dapphost/cmd/dapphost/handlers"
)

// Provision returns the command that converges the host to the configured
// end-state.
//
// The command runs the full provisioning pipeline: package baseline,
// runtime, firewall, storage node, chain node, supervision, reverse proxy,
// and certificate issuance. It is safe to re-run; converged resources are
// detected and skipped.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect dapphost.yaml)
func Provision() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision or re-converge the host",
		Long: `Provision this host into a complete dapp backend.

The pipeline installs nginx, certbot, ufw, Node.js, and pm2, sets up a
Kubo storage node and a Hardhat chain node as supervised services, and
publishes both through a TLS-terminating reverse proxy on your domain.

Running provision again after a partial failure, a config change, or a
reboot converges the host without disturbing finished resources.

DNS for the configured domain must point at this host before the run, or
certificate issuance will fail.

Examples:
  # Provision using dapphost.yaml in the current directory
  dapphost provision

  # Provision using a specific config file
  dapphost provision -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dapphost.yaml)")

	return cmd
}
