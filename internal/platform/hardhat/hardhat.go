// Package hardhat bootstraps the chain RPC node project.
package hardhat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/imamik/dapphost/internal/config"
	"github.com/imamik/dapphost/pkg/system"
)

// hardhatConfig is the minimal network configuration written into fresh
// scaffolds. The node binds to loopback only; the proxy fronts it.
const hardhatConfig = `/** @type import('hardhat/config').HardhatUserConfig */
module.exports = {
  solidity: "0.8.24",
  networks: {
    localhost: {
      url: "http://127.0.0.1:8545",
    },
  },
};
`

// Project manages the Hardhat scaffold under the install root.
type Project struct {
	runner system.Runner

	// Dir is the project directory, typically <installRoot>/chain.
	Dir string
}

// NewProject creates a Project rooted at dir.
func NewProject(runner system.Runner, dir string) *Project {
	return &Project{runner: runner, Dir: dir}
}

// Initialized reports whether a project manifest already exists.
func (p *Project) Initialized() bool {
	_, err := os.Stat(filepath.Join(p.Dir, "package.json"))
	return err == nil
}

// Scaffold creates the project directory, initializes the manifest,
// installs Hardhat, and writes the minimal network configuration.
func (p *Project) Scaffold(ctx context.Context) error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}

	if _, err := p.runner.Run(ctx, "npm", "--prefix", p.Dir, "init", "-y"); err != nil {
		return fmt.Errorf("initializing project manifest: %w", err)
	}
	if _, err := p.runner.Run(ctx, "npm", "--prefix", p.Dir, "install", "--save-dev", "hardhat"); err != nil {
		return fmt.Errorf("installing hardhat: %w", err)
	}

	configPath := filepath.Join(p.Dir, "hardhat.config.js")
	if err := os.WriteFile(configPath, []byte(hardhatConfig), 0o644); err != nil {
		return fmt.Errorf("writing network configuration: %w", err)
	}
	return nil
}

// DaemonCommand returns the supervisor start command for the RPC daemon.
// The node listens on loopback only; public access goes through the proxy.
func (p *Project) DaemonCommand() (string, []string) {
	return "npx", []string{
		"--prefix", p.Dir,
		"hardhat", "node",
		"--hostname", "127.0.0.1",
		"--port", strconv.Itoa(config.RPCPort),
	}
}
