package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"
)

// WizardResult holds the user's choices from the interactive setup wizard.
type WizardResult struct {
	Domain         string
	Email          string
	InstallRoot    string
	NodeMajor      int
	StorageVersion string
}

// RunWizard walks the operator through the provisioning configuration.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		// Defaults
		InstallRoot:    DefaultInstallRoot,
		NodeMajor:      DefaultNodeMajor,
		StorageVersion: DefaultStorageVersion,
	}

	form := huh.NewForm(
		// Host identity
		huh.NewGroup(
			huh.NewInput().
				Title("Domain").
				Description("Public DNS name for this host. Its A record must already point here.").
				Placeholder("rpc.example.com").
				Value(&result.Domain).
				Validate(validateWizardDomain),

			huh.NewInput().
				Title("Contact email").
				Description("Certificate authority contact for expiry notices").
				Placeholder("ops@example.com").
				Value(&result.Email).
				Validate(validateWizardEmail),
		),

		// Install layout
		huh.NewGroup(
			huh.NewInput().
				Title("Install root").
				Description("Directory holding the chain project files").
				Value(&result.InstallRoot).
				Validate(validateWizardInstallRoot),
		),

		// Runtime selection
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Node.js version").
				Description("Major version line of the JavaScript runtime").
				Options(
					huh.NewOption("Node.js 18 (maintenance LTS)", 18),
					huh.NewOption("Node.js 20 (active LTS)", 20),
					huh.NewOption("Node.js 22 (current)", 22),
				).
				Value(&result.NodeMajor),
		),

		// Storage node version
		huh.NewGroup(
			huh.NewInput().
				Title("Storage node version").
				Description("Kubo release tag, or \"latest\" to resolve from the release index").
				Value(&result.StorageVersion).
				Validate(validateWizardStorageVersion),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a Config.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		Domain:      strings.ToLower(strings.TrimSpace(r.Domain)),
		Email:       strings.TrimSpace(r.Email),
		InstallRoot: r.InstallRoot,
		Runtime:     RuntimeConfig{NodeMajor: r.NodeMajor},
		Storage:     StorageConfig{Version: r.StorageVersion},
	}
	cfg.ApplyDefaults()
	return cfg
}

// DefaultYAML is a commented starter configuration for hosts without an
// interactive terminal, where the wizard cannot run.
const DefaultYAML = `# dapphost host configuration.
#
# The domain's A record must point at this host before provisioning, or
# certificate issuance will fail.
domain: rpc.example.com

# Certificate authority contact for expiry notices.
email: ops@example.com

# Directory holding the chain project files.
installRoot: /opt/dapphost

runtime:
  # Node.js major version line (18 or newer).
  nodeMajor: 20

storage:
  # Kubo release tag, or "latest" to resolve from the release index.
  version: latest
`

// WriteYAML validates the config and writes it as YAML.
func WriteYAML(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func validateWizardDomain(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fmt.Errorf("domain is required")
	}
	if !domainPattern.MatchString(s) {
		return fmt.Errorf("not a valid DNS name")
	}
	return nil
}

func validateWizardEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(s, "@") {
		return fmt.Errorf("not a valid email address")
	}
	return nil
}

func validateWizardInstallRoot(s string) error {
	if !strings.HasPrefix(s, "/") {
		return fmt.Errorf("must be an absolute path")
	}
	return nil
}

func validateWizardStorageVersion(s string) error {
	if s != "latest" && !strings.HasPrefix(s, "v") {
		return fmt.Errorf("must be \"latest\" or a v-prefixed tag")
	}
	return nil
}
