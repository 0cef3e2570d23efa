// Package sysinfo probes host facts needed before provisioning starts.
package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/imamik/dapphost/pkg/system"
)

// ErrUnsupportedPlatform indicates the host CPU architecture has no
// published storage-node build.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Arch is the normalized CPU architecture tag used in release artifact names.
type Arch string

const (
	// ArchAMD64 is the 64-bit x86 architecture tag.
	ArchAMD64 Arch = "amd64"
	// ArchARM64 is the 64-bit ARM architecture tag.
	ArchARM64 Arch = "arm64"
)

// ResolveArchitecture maps a raw machine architecture string (as reported by
// uname -m) to a release artifact tag. Unknown architectures are fatal.
func ResolveArchitecture(raw string) (Arch, error) {
	switch strings.TrimSpace(raw) {
	case "x86_64", "amd64":
		return ArchAMD64, nil
	case "aarch64", "arm64":
		return ArchARM64, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, strings.TrimSpace(raw))
	}
}

// Architecture probes the host machine architecture via uname.
func Architecture(ctx context.Context, runner system.Runner) (Arch, error) {
	out, err := runner.Run(ctx, "uname", "-m")
	if err != nil {
		return "", fmt.Errorf("probing machine architecture: %w", err)
	}
	return ResolveArchitecture(out)
}
