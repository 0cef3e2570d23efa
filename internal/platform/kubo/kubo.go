// Package kubo installs and configures the IPFS storage node.
package kubo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imamik/dapphost/internal/config"
	"github.com/imamik/dapphost/internal/sysinfo"
	"github.com/imamik/dapphost/pkg/system"
)

// Defaults for the Kubo distribution and repository location.
const (
	DefaultDistURL = "https://dist.ipfs.tech"
	DefaultRepoDir = "/root/.ipfs"
)

// Node manages the Kubo binary and its local repository.
type Node struct {
	runner system.Runner

	RepoDir string
	DistURL string
}

// NewNode creates a Node backed by the given runner.
func NewNode(runner system.Runner) *Node {
	return &Node{
		runner:  runner,
		RepoDir: DefaultRepoDir,
		DistURL: DefaultDistURL,
	}
}

// Installed reports whether the ipfs binary is on PATH.
func (n *Node) Installed() bool {
	_, err := n.runner.LookPath("ipfs")
	return err == nil
}

// Install downloads the release tarball for this architecture and runs the
// bundled installer.
func (n *Node) Install(ctx context.Context, version string, arch sysinfo.Arch) error {
	tarball := fmt.Sprintf("%s/kubo/%s/kubo_%s_linux-%s.tar.gz", n.DistURL, version, version, arch)

	fetch := fmt.Sprintf("curl -fsSL %s -o /tmp/kubo.tar.gz", tarball)
	if _, err := n.runner.Run(ctx, "bash", "-c", fetch); err != nil {
		return fmt.Errorf("downloading storage node %s: %w", version, err)
	}
	if _, err := n.runner.Run(ctx, "tar", "-xzf", "/tmp/kubo.tar.gz", "-C", "/tmp"); err != nil {
		return fmt.Errorf("unpacking storage node: %w", err)
	}
	if _, err := n.runner.Run(ctx, "bash", "/tmp/kubo/install.sh"); err != nil {
		return fmt.Errorf("installing storage node: %w", err)
	}
	return nil
}

// RepoInitialized reports whether the local repository already exists.
func (n *Node) RepoInitialized() bool {
	_, err := os.Stat(filepath.Join(n.RepoDir, "config"))
	return err == nil
}

// InitRepo initializes the local repository with the server profile, which
// disables local-network discovery appropriate for a public host.
func (n *Node) InitRepo(ctx context.Context) error {
	if _, err := n.runner.Run(ctx, "ipfs", "init", "--profile", "server"); err != nil {
		return fmt.Errorf("initializing storage repository: %w", err)
	}
	return nil
}

// BindLoopback restricts the control API and gateway to the loopback
// interface. The API port stays unreachable from outside the host; the
// gateway is only reached through the reverse proxy.
func (n *Node) BindLoopback(ctx context.Context) error {
	binds := [][]string{
		{"config", "Addresses.API", fmt.Sprintf("/ip4/127.0.0.1/tcp/%d", config.StorageAPIPort)},
		{"config", "Addresses.Gateway", fmt.Sprintf("/ip4/127.0.0.1/tcp/%d", config.GatewayPort)},
	}
	for _, args := range binds {
		if _, err := n.runner.Run(ctx, "ipfs", args...); err != nil {
			return fmt.Errorf("binding storage node to loopback: %w", err)
		}
	}
	return nil
}

// DaemonCommand returns the supervisor start command for the storage daemon.
func (n *Node) DaemonCommand() (string, []string) {
	return "ipfs", []string{"daemon"}
}
