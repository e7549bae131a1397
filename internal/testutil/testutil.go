// Package testutil provides common test helpers for the envhub project:
// throwaway state files, fake PATH directories populated with stub
// executables, and a scripted stand-in for the wizard's interactive
// forms.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TempStatePath returns a config.json path inside a fresh temp
// directory. The file itself is not created, so tests start from the
// missing-state case unless they write one.
func TempStatePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

// WriteState writes content verbatim to a config.json in a fresh temp
// directory and returns its path.
func WriteState(t *testing.T, content string) string {
	t.Helper()
	path := TempStatePath(t)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteState: write failed: %v", err)
	}
	return path
}

// ReadState returns the raw contents of the state file at path.
func ReadState(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadState: read failed: %v", err)
	}
	return string(data)
}

// TempBinDir creates an empty directory suitable for use as a PATH entry
// or shim install directory.
func TempBinDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// MakeExecutable writes a small shell script named name into dir and
// marks it executable, returning its path. An empty body defaults to
// printing the script's arguments, which is enough for resolution tests
// that only care about *which* file PATH walking picks.
func MakeExecutable(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub shell executables are POSIX-only")
	}
	if body == "" {
		body = `echo "$@"`
	}
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("MakeExecutable: write failed: %v", err)
	}
	return path
}

// FakeLauncher creates a file standing in for the installed
// envhub-launcher binary and returns its path.
func FakeLauncher(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "envhub-launcher")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 120\n"), 0o755); err != nil {
		t.Fatalf("FakeLauncher: write failed: %v", err)
	}
	return path
}

// PathWith joins dirs into a PATH-style value with the platform list
// separator.
func PathWith(dirs ...string) string {
	return strings.Join(dirs, string(os.PathListSeparator))
}
