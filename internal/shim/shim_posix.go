//go:build !windows

package shim

import (
	"fmt"
	"os"

	"github.com/sontallive/envhub/internal/envherr"
)

// installPlatform creates a symbolic link at tmp pointing at launcherPath:
// the POSIX shim flavour. The launcher discovers its invocation name from
// argv[0], which loaders preserve through a symlink even though the
// resolved executable path is the launcher binary.
func installPlatform(tmp, launcherPath string) error {
	if err := os.Symlink(launcherPath, tmp); err != nil {
		return envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to symlink %s", tmp), err)
	}
	return nil
}
