package provisioning

import (
	"context"
	"time"

	"github.com/imamik/dapphost/internal/config"
	"github.com/imamik/dapphost/internal/platform/pm2"
	"github.com/imamik/dapphost/internal/probe"
	"github.com/imamik/dapphost/internal/sysinfo"
	"github.com/imamik/dapphost/pkg/system/fakes"
)

// Fakes for every narrow interface the steps depend on. Each fake records
// call counts so tests can assert which actions ran.

type fakePackages struct {
	present      map[string]bool
	installCalls int
	installErr   error
}

func (f *fakePackages) Installed(_ context.Context, pkg string) bool { return f.present[pkg] }

func (f *fakePackages) Install(_ context.Context, pkgs ...string) error {
	f.installCalls++
	if f.installErr != nil {
		return f.installErr
	}
	for _, p := range pkgs {
		f.present[p] = true
	}
	return nil
}

type fakeRuntime struct {
	major              int
	supervisorPresent  bool
	installCalls       int
	supervisorInstalls int
	installErr         error
}

func (f *fakeRuntime) SatisfiesMajor(_ context.Context, major int) bool { return f.major >= major }

func (f *fakeRuntime) Install(_ context.Context, major int) error {
	f.installCalls++
	if f.installErr != nil {
		return f.installErr
	}
	f.major = major
	return nil
}

func (f *fakeRuntime) SupervisorInstalled() bool { return f.supervisorPresent }

func (f *fakeRuntime) InstallSupervisor(_ context.Context) error {
	f.supervisorInstalls++
	f.supervisorPresent = true
	return nil
}

type registration struct {
	command string
	args    []string
	delay   time.Duration
}

type fakeSupervisor struct {
	entries       map[string]registration
	registerCalls map[string]int
	saveCalls     int
	startupCalls  int
	registerErr   error
	listErr       error
}

func newFakeSupervisor() *fakeSupervisor {
	return &fakeSupervisor{
		entries:       make(map[string]registration),
		registerCalls: make(map[string]int),
	}
}

func (f *fakeSupervisor) Registered(_ context.Context, name string) bool {
	_, ok := f.entries[name]
	return ok
}

func (f *fakeSupervisor) Register(_ context.Context, name, command string, args []string, delay time.Duration) error {
	f.registerCalls[name]++
	if f.registerErr != nil {
		return f.registerErr
	}
	// Replace-not-skip: any prior entry under this name is overwritten.
	f.entries[name] = registration{command: command, args: args, delay: delay}
	return nil
}

func (f *fakeSupervisor) Save(_ context.Context) error {
	f.saveCalls++
	return nil
}

func (f *fakeSupervisor) Startup(_ context.Context) error {
	f.startupCalls++
	return nil
}

func (f *fakeSupervisor) List(_ context.Context) ([]pm2.Process, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var procs []pm2.Process
	for name := range f.entries {
		procs = append(procs, pm2.Process{Name: name, Status: "online", PID: 1000})
	}
	return procs, nil
}

type fakeStorage struct {
	installed        bool
	repoReady        bool
	installCalls     int
	initCalls        int
	bindCalls        int
	installedVersion string
	installedArch    sysinfo.Arch
	installErr       error
}

func (f *fakeStorage) Installed() bool { return f.installed }

func (f *fakeStorage) Install(_ context.Context, version string, arch sysinfo.Arch) error {
	f.installCalls++
	if f.installErr != nil {
		return f.installErr
	}
	f.installed = true
	f.installedVersion = version
	f.installedArch = arch
	return nil
}

func (f *fakeStorage) RepoInitialized() bool { return f.repoReady }

func (f *fakeStorage) InitRepo(_ context.Context) error {
	f.initCalls++
	f.repoReady = true
	return nil
}

func (f *fakeStorage) BindLoopback(_ context.Context) error {
	f.bindCalls++
	return nil
}

func (f *fakeStorage) DaemonCommand() (string, []string) {
	return "ipfs", []string{"daemon"}
}

type fakeChain struct {
	initialized   bool
	scaffoldCalls int
	scaffoldErr   error
}

func (f *fakeChain) Initialized() bool { return f.initialized }

func (f *fakeChain) Scaffold(_ context.Context) error {
	f.scaffoldCalls++
	if f.scaffoldErr != nil {
		return f.scaffoldErr
	}
	f.initialized = true
	return nil
}

func (f *fakeChain) DaemonCommand() (string, []string) {
	return "npx", []string{"hardhat", "node", "--hostname", "127.0.0.1", "--port", "8545"}
}

type fakeProxy struct {
	sites        map[string][]byte
	installCalls int
	installErr   error
}

func newFakeProxy() *fakeProxy {
	return &fakeProxy{sites: make(map[string][]byte)}
}

func (f *fakeProxy) InstallSite(_ context.Context, name string, content []byte) error {
	f.installCalls++
	if f.installErr != nil {
		return f.installErr
	}
	f.sites[name] = content
	return nil
}

func (f *fakeProxy) SiteActive(name string) bool {
	_, ok := f.sites[name]
	return ok
}

type fakeCerts struct {
	issued     map[string]bool
	issueCalls int
	issueErr   error
}

func newFakeCerts() *fakeCerts {
	return &fakeCerts{issued: make(map[string]bool)}
}

func (f *fakeCerts) Issue(_ context.Context, domain, _ string) error {
	f.issueCalls++
	if f.issueErr != nil {
		return f.issueErr
	}
	f.issued[domain] = true
	return nil
}

func (f *fakeCerts) CertificateInstalled(domain string) bool { return f.issued[domain] }

type fakeFirewall struct {
	calls int
	err   error
}

func (f *fakeFirewall) AllowBaseline(_ context.Context) error {
	f.calls++
	return f.err
}

type fakeResolver struct {
	tag   string
	err   error
	calls int
}

func (f *fakeResolver) Latest(_ context.Context) (string, error) {
	f.calls++
	return f.tag, f.err
}

type fakeProber struct {
	results []probe.Result
	calls   int
}

func (f *fakeProber) All(_ context.Context) []probe.Result {
	f.calls++
	return f.results
}

// testHost bundles a fully faked provisioning context.
type testHost struct {
	ctx *Context

	runner     *fakes.FakeRunner
	packages   *fakePackages
	runtime    *fakeRuntime
	supervisor *fakeSupervisor
	storage    *fakeStorage
	chain      *fakeChain
	proxy      *fakeProxy
	certs      *fakeCerts
	firewall   *fakeFirewall
	resolver   *fakeResolver
	prober     *fakeProber
	observer   *MockObserver
}

// newTestHost creates a fresh, unprovisioned fake host.
func newTestHost() *testHost {
	h := &testHost{
		runner:     fakes.NewFakeRunner(),
		packages:   &fakePackages{present: make(map[string]bool)},
		runtime:    &fakeRuntime{},
		supervisor: newFakeSupervisor(),
		storage:    &fakeStorage{},
		chain:      &fakeChain{},
		proxy:      newFakeProxy(),
		certs:      newFakeCerts(),
		firewall:   &fakeFirewall{},
		resolver:   &fakeResolver{tag: "v0.29.0"},
		prober:     &fakeProber{},
		observer:   NewMockObserver(),
	}
	h.runner.Script("uname -m", "x86_64", nil)

	cfg := &config.Config{
		Domain:      "node.example.test",
		Email:       "ops@example.test",
		InstallRoot: "/opt/dapphost",
		Runtime:     config.RuntimeConfig{NodeMajor: 20},
		Storage:     config.StorageConfig{Version: "v0.28.0"},
	}

	ctx := NewContext(context.Background(), cfg)
	ctx.Runner = h.runner
	ctx.Packages = h.packages
	ctx.Runtime = h.runtime
	ctx.Supervisor = h.supervisor
	ctx.Storage = h.storage
	ctx.Chain = h.chain
	ctx.Proxy = h.proxy
	ctx.Certs = h.certs
	ctx.Firewall = h.firewall
	ctx.Releases = h.resolver
	ctx.Prober = h.prober
	ctx.Observer = h.observer

	h.ctx = ctx
	return h
}
