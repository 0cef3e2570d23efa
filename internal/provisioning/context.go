package provisioning

import (
	"context"

	"github.com/imamik/dapphost/internal/config"
	"github.com/imamik/dapphost/internal/platform/pm2"
	"github.com/imamik/dapphost/internal/probe"
	"github.com/imamik/dapphost/internal/release"
	"github.com/imamik/dapphost/internal/sysinfo"
	"github.com/imamik/dapphost/pkg/system"
)

// State holds the shared results of provisioning steps. It is progressively
// populated as steps complete and is only ever read by later steps.
type State struct {
	// Environment probing results (populated by the storage-node step)
	Arch            sysinfo.Arch
	StorageVersion  string
	VersionFellBack bool

	// Service registration results
	RegisteredServices []string

	// Proxy results
	SiteName string

	// Verification results (populated by the verify step)
	Services []pm2.Process
	Probes   []probe.Result
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed by a provisioning step.
type Context struct {
	context.Context

	Config *config.Config
	State  *State

	Runner   system.Runner
	Packages PackageInstaller
	Runtime  RuntimeInstaller

	Supervisor Supervisor
	Storage    StorageNode
	Chain      ChainProject

	Proxy    ProxyManager
	Certs    CertificateIssuer
	Firewall Firewall

	Releases release.Resolver
	Prober   Prober

	Observer Observer
}

// NewContext creates a provisioning context with a console observer and an
// empty state. All external dependencies are supplied by the caller.
func NewContext(ctx context.Context, cfg *config.Config) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Observer: NewConsoleObserver(),
	}
}
