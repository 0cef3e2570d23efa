// Package config defines the immutable provisioning configuration.
//
// The configuration is read once at startup, validated, and then passed by
// value of reference into every component; nothing mutates it afterwards.
package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Default values applied when the config file leaves a field unset.
const (
	DefaultInstallRoot    = "/opt/dapphost"
	DefaultNodeMajor      = 20
	DefaultStorageVersion = "latest"

	// MinNodeMajor is the oldest Node.js line Hardhat still supports.
	MinNodeMajor = 18
)

var domainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)+$`)

// Config holds the full provisioning configuration for one host.
type Config struct {
	// Domain is the public DNS name the proxy serves. DNS must already
	// point at this host before certificate issuance.
	Domain string `yaml:"domain"`

	// Email is the certificate authority contact address.
	Email string `yaml:"email"`

	// InstallRoot is the directory holding the chain project scaffold.
	InstallRoot string `yaml:"installRoot"`

	Runtime RuntimeConfig `yaml:"runtime"`
	Storage StorageConfig `yaml:"storage"`
}

// RuntimeConfig configures the JavaScript runtime hosting the RPC node.
type RuntimeConfig struct {
	// NodeMajor is the required Node.js major version line.
	NodeMajor int `yaml:"nodeMajor"`
}

// StorageConfig configures the content-addressed storage node.
type StorageConfig struct {
	// Version pins the Kubo release to install, or "latest" to resolve
	// against the upstream release index with a pinned fallback.
	Version string `yaml:"version"`
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.InstallRoot == "" {
		c.InstallRoot = DefaultInstallRoot
	}
	if c.Runtime.NodeMajor == 0 {
		c.Runtime.NodeMajor = DefaultNodeMajor
	}
	if c.Storage.Version == "" {
		c.Storage.Version = DefaultStorageVersion
	}
}

// Validate checks the configuration for problems an operator must fix
// before provisioning can start.
func (c *Config) Validate() error {
	var problems []string

	if c.Domain == "" {
		problems = append(problems, "domain is required")
	} else if !domainPattern.MatchString(c.Domain) {
		problems = append(problems, fmt.Sprintf("domain %q is not a valid DNS name", c.Domain))
	}

	if c.Email == "" {
		problems = append(problems, "email is required")
	} else if !strings.Contains(c.Email, "@") {
		problems = append(problems, fmt.Sprintf("email %q is not a valid address", c.Email))
	}

	if !strings.HasPrefix(c.InstallRoot, "/") {
		problems = append(problems, fmt.Sprintf("installRoot %q must be an absolute path", c.InstallRoot))
	}

	if c.Runtime.NodeMajor < MinNodeMajor {
		problems = append(problems, fmt.Sprintf("runtime.nodeMajor must be at least %d, got %d", MinNodeMajor, c.Runtime.NodeMajor))
	}

	if c.Storage.Version != "latest" && !strings.HasPrefix(c.Storage.Version, "v") {
		problems = append(problems, fmt.Sprintf("storage.version must be \"latest\" or a v-prefixed tag, got %q", c.Storage.Version))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
