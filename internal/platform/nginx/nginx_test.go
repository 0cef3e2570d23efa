package nginx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/dapphost/pkg/system/fakes"
)

func testProxy(t *testing.T) (*Proxy, *fakes.FakeRunner) {
	t.Helper()
	runner := fakes.NewFakeRunner()
	p := NewProxy(runner)
	p.SitesAvailable = t.TempDir()
	p.SitesEnabled = t.TempDir()
	return p, runner
}

func TestInstallSite_Activates(t *testing.T) {
	t.Parallel()

	p, runner := testProxy(t)
	content := []byte("server { listen 80; }\n")

	require.NoError(t, p.InstallSite(context.Background(), "node.example.test", content))

	// Final file holds the content, staging file is gone.
	got, err := p.ActiveSiteContent("node.example.test")
	require.NoError(t, err)
	assert.Equal(t, content, got)
	_, err = os.Stat(filepath.Join(p.SitesAvailable, "node.example.test.staged"))
	assert.True(t, os.IsNotExist(err))

	// Enabled link points at the final file.
	target, err := os.Readlink(filepath.Join(p.SitesEnabled, "node.example.test"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.SitesAvailable, "node.example.test"), target)

	assert.True(t, p.SiteActive("node.example.test"))
	assert.Equal(t, 1, runner.CallCount("nginx -t"))
	assert.Equal(t, 1, runner.CallCount("systemctl reload nginx"))
}

func TestInstallSite_RemovesDefaultSite(t *testing.T) {
	t.Parallel()

	p, _ := testProxy(t)
	defaultLink := filepath.Join(p.SitesEnabled, "default")
	require.NoError(t, os.WriteFile(defaultLink, []byte("catch-all"), 0o644))

	require.NoError(t, p.InstallSite(context.Background(), "node.example.test", []byte("server {}\n")))

	_, err := os.Stat(defaultLink)
	assert.True(t, os.IsNotExist(err))
}

func TestInstallSite_ValidationFailureLeavesPriorConfig(t *testing.T) {
	t.Parallel()

	p, runner := testProxy(t)

	// An earlier run activated a good config.
	prior := []byte("server { listen 80; } # prior\n")
	require.NoError(t, p.InstallSite(context.Background(), "node.example.test", prior))
	runner.Reset()

	// The next synthesis produces a config nginx rejects.
	runner.Script("nginx -t", "nginx: configuration file test failed", errors.New("exit status 1"))

	err := p.InstallSite(context.Background(), "node.example.test", []byte("server { broken\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	// Prior active file untouched, link restored, staging removed, no reload.
	got, readErr := p.ActiveSiteContent("node.example.test")
	require.NoError(t, readErr)
	assert.Equal(t, prior, got)

	target, linkErr := os.Readlink(filepath.Join(p.SitesEnabled, "node.example.test"))
	require.NoError(t, linkErr)
	assert.Equal(t, filepath.Join(p.SitesAvailable, "node.example.test"), target)

	_, statErr := os.Stat(filepath.Join(p.SitesAvailable, "node.example.test.staged"))
	assert.True(t, os.IsNotExist(statErr))
	assert.Zero(t, runner.CallCount("systemctl reload nginx"))
}

func TestInstallSite_ValidationFailureOnFreshHost(t *testing.T) {
	t.Parallel()

	p, runner := testProxy(t)
	runner.Script("nginx -t", "", errors.New("exit status 1"))

	err := p.InstallSite(context.Background(), "node.example.test", []byte("server { broken\n"))
	require.Error(t, err)

	// Nothing was activated.
	assert.False(t, p.SiteActive("node.example.test"))
	assert.Zero(t, runner.CallCount("systemctl reload nginx"))
}

func TestInstallSite_Rerun(t *testing.T) {
	t.Parallel()

	p, _ := testProxy(t)

	first := []byte("server { listen 80; } # v1\n")
	second := []byte("server { listen 80; } # v2\n")

	require.NoError(t, p.InstallSite(context.Background(), "node.example.test", first))
	require.NoError(t, p.InstallSite(context.Background(), "node.example.test", second))

	got, err := p.ActiveSiteContent("node.example.test")
	require.NoError(t, err)
	assert.Equal(t, second, got)
	assert.True(t, p.SiteActive("node.example.test"))

	// No duplicate site files accumulate across runs.
	entries, err := os.ReadDir(p.SitesAvailable)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSiteActive_DanglingLink(t *testing.T) {
	t.Parallel()

	p, _ := testProxy(t)
	link := filepath.Join(p.SitesEnabled, "gone")
	require.NoError(t, os.Symlink(filepath.Join(p.SitesAvailable, "gone"), link))

	assert.False(t, p.SiteActive("gone"))
}
