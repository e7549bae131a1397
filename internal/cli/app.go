// Package cli implements the thin administrative command-line front end
// over internal/library: a reference consumer that exercises the public
// API one subcommand at a time. Nothing under internal/library imports
// this package.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sontallive/envhub/internal/clicfg"
	"github.com/sontallive/envhub/internal/library"
	"github.com/sontallive/envhub/internal/setup"
	"github.com/sontallive/envhub/internal/state"
)

// App carries the state shared by every subcommand: the resolved state
// file path, the launcher binary location used by register/install
// operations, and the form surface destructive commands confirm
// through.
type App struct {
	StatePath    string
	LauncherPath string
	Config       *clicfg.Config
	Forms        setup.FormRunner
}

// confirmDestructive asks before an irreversible operation, unless the
// caller passed --yes or turned confirmation off in cli.toml.
func (a *App) confirmDestructive(prompt string, yes bool) (bool, error) {
	if yes || !a.Config.IsConfirmDestructive() {
		return true, nil
	}
	return a.Forms.RunConfirm(prompt)
}

// resolveStatePath returns override if set, otherwise the platform
// default.
func resolveStatePath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return state.DefaultPath()
}

// launcher returns the launcher binary the register/install-shim
// commands should point shims at: the --launcher override when given,
// otherwise the installed location.
func (a *App) launcher() (string, error) {
	if a.LauncherPath != "" {
		return a.LauncherPath, nil
	}
	return resolveLauncherPath()
}

// resolveLauncherPath locates the currently installed launcher binary so
// that register/install-shim can point new shims at it. It does not
// search PATH: it checks the user- and global-mode install directories
// in that order, since install-launcher must have placed it in one of
// them already.
func resolveLauncherPath() (string, error) {
	for _, mode := range []library.Mode{library.ModeUser, library.ModeGlobal} {
		dir, err := library.DefaultInstallDir(mode)
		if err != nil {
			continue
		}
		path := filepath.Join(dir, library.LauncherFileName())
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("envhub-launcher is not installed; run 'envhub install-launcher' first")
}
