package apt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/dapphost/pkg/system/fakes"
)

func TestInstalled(t *testing.T) {
	t.Parallel()

	runner := fakes.NewFakeRunner()
	runner.Script("dpkg -s nginx", "Status: install ok installed", nil)
	runner.Script("dpkg -s certbot", "", errors.New("package 'certbot' is not installed"))

	i := NewInstaller(runner)
	assert.True(t, i.Installed(context.Background(), "nginx"))
	assert.False(t, i.Installed(context.Background(), "certbot"))
}

func TestInstall_UpdatesIndexOnce(t *testing.T) {
	t.Parallel()

	runner := fakes.NewFakeRunner()
	i := NewInstaller(runner)

	require.NoError(t, i.Install(context.Background(), "nginx", "ufw"))
	require.NoError(t, i.Install(context.Background(), "certbot"))

	assert.Equal(t, 1, runner.CallCount("apt-get update"))
	assert.Equal(t, 1, runner.CallCount("apt-get install -y -q nginx ufw"))
	assert.Equal(t, 1, runner.CallCount("apt-get install -y -q certbot"))
}

func TestInstall_NoPackages(t *testing.T) {
	t.Parallel()

	runner := fakes.NewFakeRunner()
	require.NoError(t, NewInstaller(runner).Install(context.Background()))
	assert.Empty(t, runner.Calls())
}

func TestInstall_SurfacesToolError(t *testing.T) {
	t.Parallel()

	runner := fakes.NewFakeRunner()
	runner.Script("apt-get install", "E: Unable to locate package bogus", errors.New("exit status 100"))

	err := NewInstaller(runner).Install(context.Background(), "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "installing packages")
}
