package provisioning

import (
	"fmt"
	"time"

	"github.com/imamik/dapphost/internal/config"
	"github.com/imamik/dapphost/internal/release"
	"github.com/imamik/dapphost/internal/sysinfo"
)

// serviceRestartDelay is the supervisor restart policy applied to both
// daemons: on crash, wait this long before relaunching.
const serviceRestartDelay = 5 * time.Second

// storageNodeStep installs the storage node binary, initializes its
// repository, and binds its API and gateway to loopback.
type storageNodeStep struct{}

func (s *storageNodeStep) Name() string { return "storage-node" }

func (s *storageNodeStep) Satisfied(ctx *Context) (bool, error) {
	return ctx.Storage.Installed() && ctx.Storage.RepoInitialized(), nil
}

func (s *storageNodeStep) Run(ctx *Context) error {
	if ctx.Storage.Installed() {
		LogResourceExists(ctx.Observer, s.Name(), "binary", "ipfs")
	} else {
		arch, err := sysinfo.Architecture(ctx, ctx.Runner)
		if err != nil {
			return err
		}
		ctx.State.Arch = arch

		version, fellBack := release.Resolve(ctx, ctx.Releases, ctx.Config.Storage.Version)
		ctx.State.StorageVersion = version
		ctx.State.VersionFellBack = fellBack
		if fellBack {
			LogWarning(ctx.Observer, s.Name(),
				fmt.Sprintf("release index unreachable, installing pinned fallback %s", version))
		}

		if err := ctx.Storage.Install(ctx, version, arch); err != nil {
			return err
		}
		if !ctx.Storage.Installed() {
			return fmt.Errorf("storage node binary still missing after install")
		}
		LogResourceCreated(ctx.Observer, s.Name(), "binary", "ipfs "+version)
	}

	if ctx.Storage.RepoInitialized() {
		LogResourceExists(ctx.Observer, s.Name(), "repository", "ipfs repo")
	} else {
		if err := ctx.Storage.InitRepo(ctx); err != nil {
			return err
		}
		LogResourceCreated(ctx.Observer, s.Name(), "repository", "ipfs repo")
	}

	// Always re-applied: the bindings are authoritative and cheap.
	return ctx.Storage.BindLoopback(ctx)
}

// storageDaemonStep registers the storage daemon with the supervisor.
// Idempotence here is replace-not-skip: a stale registration could carry an
// old command line, so the entry is always recreated.
type storageDaemonStep struct{}

func (s *storageDaemonStep) Name() string { return "storage-daemon" }

func (s *storageDaemonStep) Satisfied(_ *Context) (bool, error) {
	return false, nil
}

func (s *storageDaemonStep) Run(ctx *Context) error {
	command, args := ctx.Storage.DaemonCommand()
	if err := ctx.Supervisor.Register(ctx, config.StorageServiceName, command, args, serviceRestartDelay); err != nil {
		return err
	}
	if !ctx.Supervisor.Registered(ctx, config.StorageServiceName) {
		return fmt.Errorf("service %s not registered after start", config.StorageServiceName)
	}
	ctx.State.RegisteredServices = append(ctx.State.RegisteredServices, config.StorageServiceName)
	return nil
}
