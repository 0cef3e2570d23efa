package kubo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/dapphost/internal/sysinfo"
	"github.com/imamik/dapphost/pkg/system/fakes"
)

func TestInstalled(t *testing.T) {
	t.Parallel()

	runner := fakes.NewFakeRunner()
	n := NewNode(runner)
	assert.False(t, n.Installed())

	runner.AddBinary("ipfs")
	assert.True(t, n.Installed())
}

func TestInstall(t *testing.T) {
	t.Parallel()

	runner := fakes.NewFakeRunner()
	n := NewNode(runner)

	require.NoError(t, n.Install(context.Background(), "v0.28.0", sysinfo.ArchAMD64))

	assert.Equal(t, 1, runner.CallCount("bash -c curl -fsSL https://dist.ipfs.tech/kubo/v0.28.0/kubo_v0.28.0_linux-amd64.tar.gz -o /tmp/kubo.tar.gz"))
	assert.Equal(t, 1, runner.CallCount("tar -xzf /tmp/kubo.tar.gz -C /tmp"))
	assert.Equal(t, 1, runner.CallCount("bash /tmp/kubo/install.sh"))
}

func TestInstall_ArchInArtifactName(t *testing.T) {
	t.Parallel()

	runner := fakes.NewFakeRunner()
	n := NewNode(runner)

	require.NoError(t, n.Install(context.Background(), "v0.28.0", sysinfo.ArchARM64))
	assert.Equal(t, 1, runner.CallCount("bash -c curl -fsSL https://dist.ipfs.tech/kubo/v0.28.0/kubo_v0.28.0_linux-arm64.tar.gz"))
}

func TestInstall_DownloadFailure(t *testing.T) {
	t.Parallel()

	runner := fakes.NewFakeRunner()
	runner.Script("bash -c curl", "curl: (22) 404", errors.New("exit status 22"))

	err := NewNode(runner).Install(context.Background(), "v9.9.9", sysinfo.ArchAMD64)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "downloading storage node v9.9.9")
	assert.Zero(t, runner.CallCount("tar"))
}

func TestRepoInitialized(t *testing.T) {
	t.Parallel()

	n := NewNode(fakes.NewFakeRunner())
	n.RepoDir = t.TempDir()
	assert.False(t, n.RepoInitialized())

	require.NoError(t, os.WriteFile(filepath.Join(n.RepoDir, "config"), []byte("{}"), 0o600))
	assert.True(t, n.RepoInitialized())
}

func TestInitRepoAndBindLoopback(t *testing.T) {
	t.Parallel()

	runner := fakes.NewFakeRunner()
	n := NewNode(runner)

	require.NoError(t, n.InitRepo(context.Background()))
	require.NoError(t, n.BindLoopback(context.Background()))

	assert.Equal(t, 1, runner.CallCount("ipfs init --profile server"))
	assert.Equal(t, 1, runner.CallCount("ipfs config Addresses.API /ip4/127.0.0.1/tcp/5001"))
	assert.Equal(t, 1, runner.CallCount("ipfs config Addresses.Gateway /ip4/127.0.0.1/tcp/8080"))
}

func TestDaemonCommand(t *testing.T) {
	t.Parallel()

	cmd, args := NewNode(fakes.NewFakeRunner()).DaemonCommand()
	assert.Equal(t, "ipfs", cmd)
	assert.Equal(t, []string{"daemon"}, args)
}
