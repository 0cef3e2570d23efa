package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imamik/dapphost/internal/util/prerequisites"
)

// DoctorReport is the machine-readable doctor document.
type DoctorReport struct {
	Domain string       `json:"domain"`
	Ready  bool         `json:"ready"`
	Tools  []ToolStatus `json:"tools"`
}

// ToolStatus is one host tool check outcome.
type ToolStatus struct {
	Name              string `json:"name"`
	Found             bool   `json:"found"`
	Version           string `json:"version,omitempty"`
	PipelineInstalled bool   `json:"pipelineInstalled"`
}

// Doctor diagnoses the host before provisioning.
//
// It validates the configuration file and reports every host tool the
// pipeline relies on, split into tools the operator must provide and tools
// the pipeline installs itself. A missing pipeline-installed tool just
// means the host is not yet provisioned.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if jsonOutput {
		results := checkHostTools(ctx, newRunner(), prerequisites.HostTools())
		report := DoctorReport{Domain: cfg.Domain, Ready: results.Error() == nil}
		for _, r := range results.Results {
			report.Tools = append(report.Tools, ToolStatus{
				Name:              r.Tool.Name,
				Found:             r.Found,
				Version:           r.Version,
				PipelineInstalled: r.Tool.Installed,
			})
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Println(string(data))
		return results.Error()
	}

	fmt.Println()
	fmt.Printf("Configuration OK: domain %s, storage node %s, node %d.x\n",
		cfg.Domain, cfg.Storage.Version, cfg.Runtime.NodeMajor)
	fmt.Println()

	results := checkHostTools(ctx, newRunner(), prerequisites.HostTools())

	fmt.Println("Required host tools")
	fmt.Println("-------------------")
	printToolRows(results, false)
	fmt.Println()

	fmt.Println("Installed by 'dapphost provision'")
	fmt.Println("---------------------------------")
	printToolRows(results, true)
	fmt.Println()

	if err := results.Error(); err != nil {
		return fmt.Errorf("host is not ready: %w", err)
	}

	fmt.Println("Host is ready. Run 'dapphost provision' to converge it.")
	return nil
}

func printToolRows(results *prerequisites.CheckResults, pipelineInstalled bool) {
	for _, r := range results.Results {
		if r.Tool.Installed != pipelineInstalled {
			continue
		}

		mark := "[OK]"
		detail := r.Version
		if detail == "" {
			detail = r.Path
		}
		if !r.Found {
			mark = "[--]"
			detail = "not found"
			if !pipelineInstalled {
				mark = "[!!]"
			}
		}
		fmt.Printf("  %s  %-12s %s\n", mark, r.Tool.Name, detail)
	}
}
