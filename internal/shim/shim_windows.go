//go:build windows

package shim

import (
	"fmt"
	"io"
	"os"

	"github.com/sontallive/envhub/internal/envherr"
)

// installPlatform copies launcherPath to tmp byte-for-byte: the Windows
// shim flavour. Symlinks are avoided here because creating them requires
// elevated privileges and has historically inconsistent behaviour across
// Windows versions.
func installPlatform(tmp, launcherPath string) error {
	src, err := os.Open(launcherPath)
	if err != nil {
		return envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to open %s", launcherPath), err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to stat %s", launcherPath), err)
	}

	dst, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to create %s", tmp), err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to copy launcher to %s", tmp), err)
	}
	return dst.Close()
}
