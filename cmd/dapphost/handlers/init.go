package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/dapphost/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = config.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = config.WriteYAML

	// writeFile writes raw bytes to a file.
	writeFile = os.WriteFile
)

// Init runs the configuration wizard and writes the result to a file.
// Without an interactive terminal it writes a commented default file for
// the operator to edit instead.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	if !isInteractiveTTY() {
		if err := writeFile(outputPath, []byte(config.DefaultYAML), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("No interactive terminal; wrote a default config to %s.\n", outputPath)
		fmt.Println("Edit it, then run 'dapphost provision'.")
		return nil
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg := result.ToConfig()

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("dapphost - single-host dapp backend")
	fmt.Println("===================================")
	fmt.Println()
	fmt.Println("This wizard creates a host configuration with sensible defaults.")
	fmt.Println("Just answer 5 simple questions.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Host Summary")
	fmt.Println("------------")
	fmt.Printf("  Domain:       %s\n", cfg.Domain)
	fmt.Printf("  Email:        %s\n", cfg.Email)
	fmt.Printf("  Install root: %s\n", cfg.InstallRoot)
	fmt.Printf("  Node.js:      %d.x\n", cfg.Runtime.NodeMajor)
	fmt.Printf("  Storage node: %s\n", cfg.Storage.Version)
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Point your domain's A record at this host:\n")
	fmt.Printf("     %s -> <this host's public IP>\n", cfg.Domain)
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Provision the host:")
	fmt.Println("     dapphost provision")
	fmt.Println()
}
