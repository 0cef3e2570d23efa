// Package prerequisites checks for the host tools provisioning relies on.
package prerequisites

import (
	"context"
	"fmt"
	"strings"

	"github.com/imamik/dapphost/pkg/system"
)

// Tool describes one host tool the provisioner invokes.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Installed reports whether provisioning installs this tool itself;
	// such tools are informational rather than blocking.
	Installed bool

	// Description explains what the tool is used for.
	Description string
}

// HostTools returns the tools `dapphost doctor` reports on. Tools with
// Installed=true are provisioned by the pipeline itself and their absence
// just means the host is not yet provisioned.
func HostTools() []Tool {
	return []Tool{
		{Name: "apt-get", Description: "Package baseline installation"},
		{Name: "uname", Description: "Host architecture probing"},
		{Name: "systemctl", Description: "Proxy reload and boot persistence"},
		{Name: "curl", Installed: true, Description: "Release downloads"},
		{Name: "nginx", Installed: true, Description: "Reverse proxy"},
		{Name: "certbot", Installed: true, Description: "Certificate issuance"},
		{Name: "ufw", Installed: true, Description: "Firewall rules"},
		{Name: "node", Installed: true, Description: "Chain RPC node runtime"},
		{Name: "pm2", Installed: true, Description: "Process supervision"},
		{Name: "ipfs", Installed: true, Description: "Storage node"},
	}
}

// CheckResult is the outcome for one tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults aggregates outcomes for a tool set.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// Error returns an error naming any missing tools the pipeline cannot
// install itself, or nil.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if !tool.Installed {
			missing = append(missing, tool.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required host tools: %s", strings.Join(missing, ", "))
}

// Check verifies tool presence via PATH lookup, probing versions best-effort.
func Check(ctx context.Context, runner system.Runner, tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		if path, err := runner.LookPath(tool.Name); err == nil {
			result.Found = true
			result.Path = path
			result.Version = toolVersion(ctx, runner, tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// toolVersion attempts common version flags; empty string when none work.
func toolVersion(ctx context.Context, runner system.Runner, name string) string {
	for _, flag := range []string{"--version", "version", "-v"} {
		out, err := runner.Run(ctx, name, flag)
		if err == nil && out != "" {
			if idx := strings.IndexByte(out, '\n'); idx >= 0 {
				out = out[:idx]
			}
			return strings.TrimSpace(out)
		}
	}
	return ""
}
