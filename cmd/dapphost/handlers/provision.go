// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/dapphost/internal/config"
	"github.com/imamik/dapphost/internal/platform/apt"
	"github.com/imamik/dapphost/internal/platform/certbot"
	"github.com/imamik/dapphost/internal/platform/hardhat"
	"github.com/imamik/dapphost/internal/platform/kubo"
	"github.com/imamik/dapphost/internal/platform/nginx"
	"github.com/imamik/dapphost/internal/platform/nodejs"
	"github.com/imamik/dapphost/internal/platform/pm2"
	"github.com/imamik/dapphost/internal/platform/ufw"
	"github.com/imamik/dapphost/internal/probe"
	"github.com/imamik/dapphost/internal/provisioning"
	"github.com/imamik/dapphost/internal/release"
	"github.com/imamik/dapphost/internal/util/prerequisites"
	"github.com/imamik/dapphost/pkg/system"
)

// chainProjectDir is the install-root subdirectory holding the chain
// project scaffold.
const chainProjectDir = "/chain"

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newRunner creates the command runner provisioning executes through.
	newRunner = func() system.Runner {
		return &system.ExecRunner{Env: []string{"DEBIAN_FRONTEND=noninteractive"}}
	}

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.Load

	// findConfigFile finds the default config file (for testing injection).
	findConfigFile = config.FindConfigFile

	// checkHostTools runs host prerequisite checks.
	checkHostTools = prerequisites.Check

	// runPipeline executes the provisioning steps.
	runPipeline = provisioning.Run
)

// Provision converges the host to the configured end-state.
//
// The handler loads and validates the configuration, verifies the blocking
// host prerequisites, wires the platform adapters into a provisioning
// context, and runs the default step pipeline. Re-running after a partial
// failure resumes where the previous run stopped: converged steps detect
// their end-state and skip.
func Provision(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	runner := newRunner()
	if err := checkPrerequisites(ctx, runner); err != nil {
		return err
	}

	log.Printf("Provisioning host for domain: %s", cfg.Domain)

	pctx := buildContext(ctx, cfg, runner)
	if err := runPipeline(pctx, provisioning.DefaultSteps()); err != nil {
		return err
	}

	printProvisionSuccess(cfg, pctx.State)
	return nil
}

// loadConfig loads and validates the host configuration. If configPath is
// empty, it looks for dapphost.yaml in the current directory and its
// parents.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'dapphost init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log.Printf("Using config: %s", configPath)
	return cfg, nil
}

// buildContext wires the production platform adapters into a provisioning
// context.
func buildContext(ctx context.Context, cfg *config.Config, runner system.Runner) *provisioning.Context {
	installer := apt.NewInstaller(runner)

	pctx := provisioning.NewContext(ctx, cfg)
	pctx.Runner = runner
	pctx.Packages = installer
	pctx.Runtime = nodejs.NewRuntime(runner, installer)
	pctx.Supervisor = pm2.NewSupervisor(runner)
	pctx.Storage = kubo.NewNode(runner)
	pctx.Chain = hardhat.NewProject(runner, cfg.InstallRoot+chainProjectDir)
	pctx.Proxy = nginx.NewProxy(runner)
	pctx.Certs = certbot.NewClient(runner)
	pctx.Firewall = ufw.NewFirewall(runner)
	pctx.Releases = release.NewDistResolver()
	pctx.Prober = probe.NewProber()
	return pctx
}

// checkPrerequisites verifies the host tools the pipeline itself cannot
// install. Tools the pipeline installs are reported but never block.
func checkPrerequisites(ctx context.Context, runner system.Runner) error {
	log.Println("Checking host prerequisites...")
	results := checkHostTools(ctx, runner, prerequisites.HostTools())

	for _, r := range results.Results {
		if r.Found {
			version := r.Version
			if version == "" {
				version = "unknown version"
			}
			log.Printf("  Found %s (%s)", r.Tool.Name, version)
		}
	}

	if err := results.Error(); err != nil {
		return fmt.Errorf("prerequisites check failed: %w", err)
	}
	return nil
}

// printProvisionSuccess outputs the completion message and next steps.
func printProvisionSuccess(cfg *config.Config, state *provisioning.State) {
	fmt.Printf("\nProvisioning complete!\n\n")

	if len(state.RegisteredServices) > 0 {
		fmt.Println("Supervised services:")
		for _, name := range state.RegisteredServices {
			fmt.Printf("  - %s\n", name)
		}
		fmt.Println()
	}

	fmt.Println("Endpoints:")
	fmt.Printf("  https://%s/rpc      chain JSON-RPC\n", cfg.Domain)
	fmt.Printf("  https://%s/ipfs/    content gateway\n", cfg.Domain)
	fmt.Printf("  https://%s/healthz  liveness\n", cfg.Domain)
	fmt.Println()
	fmt.Println("Check the host at any time with:")
	fmt.Println("  dapphost status")
}
