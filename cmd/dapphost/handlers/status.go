package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imamik/dapphost/internal/config"
	"github.com/imamik/dapphost/internal/platform/certbot"
	"github.com/imamik/dapphost/internal/platform/nginx"
	"github.com/imamik/dapphost/internal/platform/pm2"
	"github.com/imamik/dapphost/internal/probe"
	"github.com/imamik/dapphost/internal/ui"
	"github.com/imamik/dapphost/pkg/system"
)

// HostStatus is the machine-readable status document.
type HostStatus struct {
	Domain      string          `json:"domain"`
	SiteActive  bool            `json:"siteActive"`
	Certificate bool            `json:"certificate"`
	Services    []ServiceStatus `json:"services"`
	Probes      []ProbeStatus   `json:"probes"`
}

// ServiceStatus is one supervised process.
type ServiceStatus struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	PID      int    `json:"pid"`
	Restarts int    `json:"restarts"`
}

// ProbeStatus is one liveness probe outcome.
type ProbeStatus struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// statusSources gathers the host state the status report draws from.
type statusSources struct {
	listServices  func(ctx context.Context) ([]pm2.Process, error)
	siteActive    func(name string) bool
	certInstalled func(domain string) bool
	runProbes     func(ctx context.Context) []probe.Result
}

// Factory function variables for status - can be replaced in tests.
var (
	newStatusSources = func(runner system.Runner) *statusSources {
		supervisor := pm2.NewSupervisor(runner)
		proxy := nginx.NewProxy(runner)
		certs := certbot.NewClient(runner)
		prober := probe.NewProber()
		return &statusSources{
			listServices:  supervisor.List,
			siteActive:    proxy.SiteActive,
			certInstalled: certs.CertificateInstalled,
			runProbes:     prober.All,
		}
	}

	// isInteractiveTTY reports whether output goes to a terminal.
	isInteractiveTTY = ui.IsInteractiveTTY
)

// Status reports the provisioned state of the host: supervised services,
// the active proxy site, the certificate, and the liveness probes.
func Status(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	sources := newStatusSources(newRunner())
	status, err := gatherStatus(ctx, cfg, sources)
	if err != nil {
		return err
	}

	if jsonOutput {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(renderStatus(status, isInteractiveTTY()))
	return nil
}

// gatherStatus collects the status document from the host.
func gatherStatus(ctx context.Context, cfg *config.Config, sources *statusSources) (*HostStatus, error) {
	status := &HostStatus{
		Domain:      cfg.Domain,
		SiteActive:  sources.siteActive(cfg.Domain),
		Certificate: sources.certInstalled(cfg.Domain),
	}

	services, err := sources.listServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list supervised services: %w", err)
	}
	for _, svc := range services {
		status.Services = append(status.Services, ServiceStatus{
			Name:     svc.Name,
			Status:   svc.Status,
			PID:      svc.PID,
			Restarts: svc.Restarts,
		})
	}

	for _, res := range sources.runProbes(ctx) {
		status.Probes = append(status.Probes, ProbeStatus{
			Name:   res.Name,
			OK:     res.OK,
			Detail: res.Detail,
		})
	}

	return status, nil
}

// renderStatus formats the status document for the terminal.
func renderStatus(status *HostStatus, styled bool) string {
	report := &ui.Report{
		Domain: status.Domain,
		Styled: styled,
		Edge: []ui.CheckLine{
			{Name: "proxy site", OK: status.SiteActive, Detail: siteDetail(status.SiteActive)},
			{Name: "certificate", OK: status.Certificate, Detail: certDetail(status.Certificate)},
		},
	}

	for _, svc := range status.Services {
		report.Services = append(report.Services, ui.ServiceLine{
			Name:     svc.Name,
			Status:   svc.Status,
			PID:      svc.PID,
			Restarts: svc.Restarts,
			Online:   svc.Status == "online",
		})
	}

	for _, p := range status.Probes {
		report.Probes = append(report.Probes, ui.CheckLine{
			Name:   p.Name,
			OK:     p.OK,
			Detail: p.Detail,
		})
	}

	return report.Render()
}

func siteDetail(active bool) string {
	if active {
		return "active"
	}
	return "not installed"
}

func certDetail(installed bool) string {
	if installed {
		return "issued"
	}
	return "not issued"
}
