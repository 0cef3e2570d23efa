package sysinfo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/dapphost/pkg/system/fakes"
)

func TestResolveArchitecture(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Arch
	}{
		{"x86_64", ArchAMD64},
		{"amd64", ArchAMD64},
		{"aarch64", ArchARM64},
		{"arm64", ArchARM64},
		{"x86_64\n", ArchAMD64},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, err := ResolveArchitecture(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveArchitecture_Unsupported(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"armv7l", "i686", "riscv64", ""} {
		_, err := ResolveArchitecture(raw)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedPlatform))
	}
}

func TestArchitecture(t *testing.T) {
	t.Parallel()

	runner := fakes.NewFakeRunner()
	runner.Script("uname -m", "aarch64", nil)

	arch, err := Architecture(context.Background(), runner)
	require.NoError(t, err)
	assert.Equal(t, ArchARM64, arch)
	assert.Equal(t, 1, runner.CallCount("uname -m"))
}

func TestArchitecture_ProbeFailure(t *testing.T) {
	t.Parallel()

	runner := fakes.NewFakeRunner()
	runner.Script("uname -m", "", errors.New("uname: not found"))

	_, err := Architecture(context.Background(), runner)
	require.Error(t, err)
}
