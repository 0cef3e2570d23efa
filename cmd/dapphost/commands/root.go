// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the dapphost CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dapphost",
		Short: "Provision a dapp backend host: chain RPC, storage node, TLS proxy",
	}

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Provision())
	cmd.AddCommand(Status())
	cmd.AddCommand(Doctor())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
