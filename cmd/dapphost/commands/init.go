package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dapphost/cmd/dapphost/handlers"
)

// Init returns the command for interactively creating a host configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "dapphost.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a host configuration",
		Long: `Interactively create a host configuration file.

This command guides you through configuring the host step by step.
It will ask about:

  - The public domain the proxy serves
  - The certificate authority contact email
  - The install root for the chain project
  - The Node.js version line
  - The storage node version to install`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "dapphost.yaml", "Output file path")

	return cmd
}
