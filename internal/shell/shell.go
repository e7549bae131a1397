// Package shell generates the ready-to-paste PATH snippets the library
// returns alongside envherr.PathNotOnPath, one per common POSIX shell.
// It never writes to a shell rc file itself — that decision is left to
// a collaborating UI.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
)

// Detect returns the invoking user's shell name (e.g. "zsh", "bash",
// "fish"), read from $SHELL, or "" if it cannot be determined.
func Detect() string {
	sh := os.Getenv("SHELL")
	if sh == "" {
		return ""
	}
	return filepath.Base(sh)
}

// PathHint returns a shell snippet that prepends dir to PATH, in the
// idiom of shellType. An unrecognized shellType falls back to the
// POSIX-sh form, since most interactive shells still accept it.
func PathHint(shellType, dir string) string {
	switch shellType {
	case "fish":
		return fmt.Sprintf("set -gx PATH %q $PATH\n", dir)
	case "csh", "tcsh":
		return fmt.Sprintf("setenv PATH %q:$PATH\n", dir)
	default: // bash, zsh, sh, and anything unrecognized
		return fmt.Sprintf("export PATH=%q:\"$PATH\"\n", dir)
	}
}

// RCPath returns the conventional rc file a PathHint snippet for
// shellType would be pasted into, for display purposes only — EnvHub
// never writes to it.
func RCPath(shellType string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	switch shellType {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "bash":
		return filepath.Join(home, ".bashrc")
	case "fish":
		return filepath.Join(home, ".config", "fish", "config.fish")
	default:
		return ""
	}
}
