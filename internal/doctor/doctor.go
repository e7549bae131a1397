// Package doctor implements the read-only diagnostics grouped under
// doctor_app: is an alias's target binary resolvable, is its
// shim installed and current, and is its install directory on PATH. It
// supplements the install-time PATH warnings in internal/shim with a
// standing, re-runnable report.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sontallive/envhub/internal/pathwalk"
	"github.com/sontallive/envhub/internal/shim"
	"github.com/sontallive/envhub/internal/state"
)

// Status is the severity of one diagnostic check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Result is one diagnostic finding for a single alias.
type Result struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// Report is the full doctor_app output for one alias.
type Report struct {
	Alias   string
	Results []Result
}

// App runs every doctor_app check against app, given the installed
// launcher's path (so a stale shim left by a previous install can be
// told apart from a current one) and the install directory the shim
// would live in.
func App(alias string, app *state.App, launcherPath, installDir string) Report {
	r := Report{Alias: alias}

	r.Results = append(r.Results, checkTarget(app.TargetBinary, launcherPath))
	r.Results = append(r.Results, checkShim(installDir, alias, launcherPath, app.Installed))
	r.Results = append(r.Results, checkInstallDirOnPath(installDir))
	r.Results = append(r.Results, checkActiveProfile(app))
	return r
}

func checkTarget(targetBinary, launcherPath string) Result {
	if targetBinary == "" {
		return Result{Name: "target_binary", Status: StatusFail, Message: "target_binary is empty"}
	}
	if _, err := os.Stat(targetBinary); err == nil && filepath.IsAbs(targetBinary) {
		return Result{Name: "target_binary", Status: StatusOK, Message: fmt.Sprintf("resolves to %s (absolute)", targetBinary)}
	}
	if filepath.IsAbs(targetBinary) {
		return Result{
			Name: "target_binary", Status: StatusFail,
			Message: fmt.Sprintf("absolute target %s does not exist", targetBinary),
			Fix: "point target_binary at an existing file or re-register with a PATH-relative name",
		}
	}
	hit := pathwalk.FindInPath(os.Getenv("PATH"), targetBinary, launcherPath)
	if hit == "" {
		return Result{
			Name: "target_binary", Status: StatusFail,
			Message: fmt.Sprintf("%q not found on PATH (excluding the launcher itself)", targetBinary),
			Fix: "install the target binary or point target_binary at an absolute path",
		}
	}
	return Result{Name: "target_binary", Status: StatusOK, Message: fmt.Sprintf("resolves to %s", hit)}
}

func checkShim(installDir, alias, launcherPath string, installedFlag bool) Result {
	exists, current := shim.Points(installDir, alias, launcherPath)
	switch {
	case !exists && !installedFlag:
		return Result{Name: "shim", Status: StatusWarn, Message: "no shim installed yet", Fix: "run install_shim for this alias"}
	case !exists && installedFlag:
		return Result{Name: "shim", Status: StatusFail, Message: "state says installed but the shim file is missing", Fix: "run install_shim again"}
	case exists && !current:
		return Result{Name: "shim", Status: StatusWarn, Message: "shim exists but points at a different launcher binary", Fix: "reinstall the shim after upgrading the launcher"}
	default:
		return Result{Name: "shim", Status: StatusOK, Message: "shim installed and current"}
	}
}

func checkInstallDirOnPath(installDir string) Result {
	if installDir == "" {
		return Result{Name: "install_dir", Status: StatusWarn, Message: "no install directory recorded yet"}
	}
	if pathwalk.Contains(os.Getenv("PATH"), installDir) {
		return Result{Name: "install_dir", Status: StatusOK, Message: fmt.Sprintf("%s is on PATH", installDir)}
	}
	return Result{
		Name: "install_dir", Status: StatusFail,
		Message: fmt.Sprintf("%s is not on PATH", installDir),
		Fix: "add it to PATH (see the snippet returned alongside PathNotOnPath)",
	}
}

func checkActiveProfile(app *state.App) Result {
	if app.ActiveProfile == "" {
		if first := app.Profiles.Oldest(); first != nil {
			return Result{
				Name: "active_profile", Status: StatusWarn,
				Message: fmt.Sprintf("no active profile; the launcher will fall back to the first profile %q", first.Key),
				Fix:     "pick one with profile set-active",
			}
		}
		return Result{
			Name: "active_profile", Status: StatusWarn,
			Message: "no profiles at all; the launcher will apply an empty variable map",
			Fix:     "add a profile with profile add",
		}
	}
	if _, ok := app.Profiles.Get(app.ActiveProfile); !ok {
		return Result{Name: "active_profile", Status: StatusFail, Message: fmt.Sprintf("active_profile %q does not name an existing profile", app.ActiveProfile)}
	}
	return Result{Name: "active_profile", Status: StatusOK, Message: fmt.Sprintf("active profile is %q", app.ActiveProfile)}
}
