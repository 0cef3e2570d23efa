package certbot

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

func TestIssue(t *testing.T) {
	t.Parallel()

	runner := fakes.NewFakeRunner()
	c := NewClient(runner)

	require.NoError(t, c.Issue(context.Background(), "node.example.test", "ops@example.test"))
	assert.Equal(t, 1, runner.CallCount("certbot --nginx -d node.example.test -m ops@example.test --agree-tos --non-interactive --redirect"))
}

func TestIssue_Failure(t *testing.T) {
	t.Parallel()

	runner := fakes.NewFakeRunner()
	runner.Script("certbot", "Challenge failed for domain node.example.test", errors.New("exit status 1"))

	err := NewClient(runner).Issue(context.Background(), "node.example.test", "ops@example.test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issuing certificate for node.example.test")
}

func TestCertificateInstalled(t *testing.T) {
	t.Parallel()

	runner := fakes.NewFakeRunner()
	c := NewClient(runner)
	c.LiveDir = t.TempDir()

	assert.False(t, c.CertificateInstalled("node.example.test"))

	certDir := filepath.Join(c.LiveDir, "node.example.test")
	require.NoError(t, os.MkdirAll(certDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(certDir, "fullchain.pem"), []byte("cert"), 0o600))

	assert.True(t, c.CertificateInstalled("node.example.test"))
}
