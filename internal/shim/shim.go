// Package shim implements the platform-specific on-disk shim: a POSIX
// symlink or a Windows byte-identical copy of the launcher binary, named
// after a registered alias, plus the anti-loop discipline required
// before one is created.
package shim

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sontallive/envhub/internal/envherr"
	"github.com/sontallive/envhub/internal/pathwalk"
)

// FileName returns the on-disk shim file name for alias on the current
// platform: bare on POSIX, with a ".exe" suffix on Windows.
func FileName(alias string) string {
	if runtime.GOOS == "windows" {
		return alias + ".exe"
	}
	return alias
}

// PreCheck reports whether an executable named alias already resolves on
// PATH ahead of dir, and whether dir itself appears on PATH at all. The
// library surfaces the first as a non-fatal warning (shadowing an
// existing command is permitted) and the second as envherr.PathNotOnPath
// (a shim nobody's shell will find is a configuration bug).
type PreCheck struct {
	ShadowsExisting bool
	ShadowedPath    string
	DirOnPath       bool
}

// Check inspects the current PATH environment variable for conflicts
// before a shim for alias is installed into dir.
func Check(dir, alias string) PreCheck {
	pc := PreCheck{DirOnPath: pathwalk.Contains(os.Getenv("PATH"), dir)}
	if hit := pathwalk.FindInPath(os.Getenv("PATH"), alias, ""); hit != "" {
		if same, err := pathwalk.SameExecutable(hit, filepath.Join(dir, FileName(alias))); err != nil || !same {
			pc.ShadowsExisting = true
			pc.ShadowedPath = hit
		}
	}
	return pc
}

// Prepare creates a temporary shim for alias pointing at launcherPath
// inside dir, but does not yet give it its final name: this step runs
// *before* the state write in the prepare-then-commit sequence, so a
// failure here never touches the state file. It refuses to clobber a
// destination file that isn't already a shim pointing at this exact
// launcher.
func Prepare(dir, alias, launcherPath string) (tmpPath string, err error) {
	if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
		return "", envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to create %s", dir), mkErr)
	}
	dest := filepath.Join(dir, FileName(alias))
	if rejectErr := rejectForeignFile(dest, launcherPath); rejectErr != nil {
		return "", rejectErr
	}
	tmp := dest + ".envhub-tmp"
	os.Remove(tmp)
	if instErr := installPlatform(tmp, launcherPath); instErr != nil {
		os.Remove(tmp)
		return "", instErr
	}
	return tmp, nil
}

// Commit renames a shim previously created by Prepare into its final
// name; run this only after the state write it was prepared for
// succeeds.
func Commit(dir, alias, tmpPath string) (finalPath string, err error) {
	dest := filepath.Join(dir, FileName(alias))
	if renErr := os.Rename(tmpPath, dest); renErr != nil {
		os.Remove(tmpPath)
		return "", envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to install shim at %s", dest), renErr)
	}
	return dest, nil
}

// Abort discards a temporary shim created by Prepare without committing
// it — used when the subsequent state write fails.
func Abort(tmpPath string) {
	if tmpPath != "" {
		os.Remove(tmpPath)
	}
}

// Install is the non-prepare-then-commit convenience: Prepare followed
// immediately by Commit, for call sites (install_shim) that have no
// intervening state write to sequence around.
func Install(dir, alias, launcherPath string) (string, error) {
	tmp, err := Prepare(dir, alias, launcherPath)
	if err != nil {
		return "", err
	}
	final, err := Commit(dir, alias, tmp)
	if err != nil {
		return "", err
	}
	return final, nil
}

// Remove deletes the shim file for alias in dir, if present. A missing
// shim is not an error — unregister_app tolerates partial success.
func Remove(dir, alias string) error {
	dest := filepath.Join(dir, FileName(alias))
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to remove shim at %s", dest), err)
	}
	return nil
}

// Points reports whether the shim file for alias in dir exists and
// resolves to launcherPath — used by doctor_app to detect a shim left
// behind by a previous install of the launcher.
func Points(dir, alias, launcherPath string) (exists, current bool) {
	dest := filepath.Join(dir, FileName(alias))
	if _, err := os.Lstat(dest); err != nil {
		return false, false
	}
	same, err := pathwalk.SameExecutable(dest, launcherPath)
	if err != nil {
		return true, false
	}
	return true, same
}

// rejectForeignFile fails the install if dest exists and is not already a
// shim pointing at launcherPath: a non-launcher file of that name is left
// alone rather than overwritten.
func rejectForeignFile(dest, launcherPath string) error {
	info, err := os.Lstat(dest)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to stat %s", dest), err)
	}
	same, sameErr := pathwalk.SameExecutable(dest, launcherPath)
	if sameErr == nil && same {
		return nil
	}
	// A Windows shim is a copy, not a link; a byte-identical file is ours.
	if identical, idErr := sameContents(dest, launcherPath); idErr == nil && identical {
		return nil
	}
	return envherr.New(envherr.AlreadyExists, fmt.Sprintf("%s already exists and is not an EnvHub shim (mode %s)", dest, info.Mode()))
}

func sameContents(a, b string) (bool, error) {
	da, err := os.ReadFile(a)
	if err != nil {
		return false, err
	}
	db, err := os.ReadFile(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(da, db), nil
}
