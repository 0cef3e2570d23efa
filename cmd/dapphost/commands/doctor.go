package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dapphost/cmd/dapphost/handlers"
)

// Doctor returns the command that diagnoses the host before provisioning.
//
// It validates the configuration and reports which required and
// pipeline-installed tools are present on the host.
func Doctor() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and host prerequisites",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dapphost.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}
