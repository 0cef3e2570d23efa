// Package provisioning contains the step engine that drives host
// provisioning.
//
// The domain work is organized into narrow interfaces implemented by the
// platform adapters under internal/platform, so every step can be exercised
// in tests without touching real system tools. Steps run strictly in order;
// each one decides via a side-effect-free precondition whether its action is
// still needed.
package provisioning

import (
	"context"
	"time"

	"github.com/imamik/dapphost/internal/platform/pm2"
	"github.com/imamik/dapphost/internal/probe"
	"github.com/imamik/dapphost/internal/sysinfo"
)

// Step is one unit of provisioning work.
type Step interface {
	// Name returns the short step identifier used in logs and errors.
	Name() string

	// Satisfied reports whether the desired end-state already holds.
	// It must be side-effect-free and cheap; network calls are reserved
	// for actions.
	Satisfied(ctx *Context) (bool, error)

	// Run performs the step's action and verifies its post-condition.
	// It is only called when Satisfied returned false.
	Run(ctx *Context) error
}

// bestEffort marks steps whose failure is logged but does not abort the run.
type bestEffort interface {
	BestEffort() bool
}

// PackageInstaller installs operating system packages.
type PackageInstaller interface {
	Installed(ctx context.Context, pkg string) bool
	Install(ctx context.Context, pkgs ...string) error
}

// RuntimeInstaller manages the JavaScript runtime and supervisor binary.
type RuntimeInstaller interface {
	SatisfiesMajor(ctx context.Context, major int) bool
	Install(ctx context.Context, major int) error
	SupervisorInstalled() bool
	InstallSupervisor(ctx context.Context) error
}

// Supervisor is the external service registry managing long-running
// processes across restarts and reboots.
type Supervisor interface {
	Registered(ctx context.Context, name string) bool
	Register(ctx context.Context, name, command string, args []string, restartDelay time.Duration) error
	Save(ctx context.Context) error
	Startup(ctx context.Context) error
	List(ctx context.Context) ([]pm2.Process, error)
}

// StorageNode manages the content-addressed storage daemon installation.
type StorageNode interface {
	Installed() bool
	Install(ctx context.Context, version string, arch sysinfo.Arch) error
	RepoInitialized() bool
	InitRepo(ctx context.Context) error
	BindLoopback(ctx context.Context) error
	DaemonCommand() (string, []string)
}

// ChainProject manages the RPC node project scaffold.
type ChainProject interface {
	Initialized() bool
	Scaffold(ctx context.Context) error
	DaemonCommand() (string, []string)
}

// ProxyManager installs and activates reverse proxy site configuration.
type ProxyManager interface {
	InstallSite(ctx context.Context, name string, content []byte) error
	SiteActive(name string) bool
}

// CertificateIssuer obtains TLS certificates from the external CA client.
type CertificateIssuer interface {
	Issue(ctx context.Context, domain, email string) error
	CertificateInstalled(domain string) bool
}

// Firewall applies host firewall rules.
type Firewall interface {
	AllowBaseline(ctx context.Context) error
}

// Prober runs advisory liveness checks against the supervised services.
type Prober interface {
	All(ctx context.Context) []probe.Result
}
