// Package main is the entry point for the dapphost CLI.
//
// dapphost provisions a single Ubuntu host into a self-contained dapp
// backend: a local blockchain RPC node and a content-addressed storage
// node, both supervised by pm2, published through a TLS-terminating
// nginx reverse proxy.
//
// Commands: init, provision, status, doctor.
//
// For detailed usage information, run:
//
//	dapphost --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/dapphost/cmd/dapphost/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
