package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dapphost/cmd/dapphost/handlers"
)

// Status returns the command that reports the provisioned state of the host.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect dapphost.yaml)
//	--json: Output machine-readable JSON instead of the styled report
func Status() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show supervised services, proxy, and certificate state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dapphost.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")

	return cmd
}
