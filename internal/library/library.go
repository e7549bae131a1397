// Package library implements the state-manipulation operations that both
// the administrative CLI and any other collaborating UI call: registering
// aliases, managing profiles and their variables, and installing the
// launcher and its shims.
package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/sontallive/envhub/internal/doctor"
	"github.com/sontallive/envhub/internal/envherr"
	"github.com/sontallive/envhub/internal/pathwalk"
	"github.com/sontallive/envhub/internal/shell"
	"github.com/sontallive/envhub/internal/shim"
	"github.com/sontallive/envhub/internal/state"
)

// Mode selects install_launcher's target directory.
type Mode string

const (
	ModeGlobal Mode = "global"
	ModeUser   Mode = "user"
)

// LauncherFileName is the installed launcher's on-disk name.
func LauncherFileName() string {
	if runtime.GOOS == "windows" {
		return "envhub-launcher.exe"
	}
	return "envhub-launcher"
}

// DefaultInstallDir resolves the documented install directory for mode on
// the current platform. Windows always installs under the same
// directory regardless of mode; only the PATH-registration step (below)
// differs between global and user.
func DefaultInstallDir(mode Mode) (string, error) {
	if runtime.GOOS == "windows" {
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			return "", envherr.New(envherr.IoError, "LOCALAPPDATA is not set")
		}
		return filepath.Join(base, "EnvHub", "bin"), nil
	}
	if mode == ModeGlobal {
		return "/usr/local/bin", nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", envherr.Wrap(envherr.IoError, "failed to resolve home directory", err)
	}
	return filepath.Join(home, ".local", "bin"), nil
}

// PlatformInfo reports the side effects install_launcher had (or didn't
// have) on the user's PATH, so a collaborating UI can tell the user what,
// if anything, they still need to do by hand.
type PlatformInfo struct {
	InstallDir       string
	LauncherPath     string
	OnPath           bool
	RequiresNewShell bool
	PathHintShell    string
	PathHintSnippet  string
}

// InstallLauncher copies the launcher binary at sourcePath into the
// directory mode resolves to. On Windows, a
// user-mode install additionally appends the directory to the
// HKCU\Environment\Path registry value; WM_SETTINGCHANGE is not
// broadcast, so RequiresNewShell is set instead. On POSIX, no shell rc
// file is ever edited; a ready-to-paste snippet is returned for the CLI
// to print.
func InstallLauncher(sourcePath string, mode Mode) (*PlatformInfo, error) {
	dir, err := DefaultInstallDir(mode)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to create %s", dir), err)
	}
	dest := filepath.Join(dir, LauncherFileName())
	if err := copyExecutable(sourcePath, dest); err != nil {
		return nil, err
	}

	info := &PlatformInfo{InstallDir: dir, LauncherPath: dest}
	info.OnPath = pathwalk.Contains(os.Getenv("PATH"), dir)

	if runtime.GOOS == "windows" {
		if mode == ModeUser {
			added, err := appendUserPath(dir)
			if err != nil {
				return info, envherr.Wrap(envherr.Permission, "failed to update HKCU\\Environment\\Path", err)
			}
			if added {
				info.RequiresNewShell = true
			}
		}
	} else if !info.OnPath {
		info.PathHintShell = shell.Detect()
		info.PathHintSnippet = shell.PathHint(info.PathHintShell, dir)
	}
	return info, nil
}

// copyExecutable copies src to dst byte-for-byte and marks dst
// executable, classifying a permission failure distinctly from other I/O
// failures so install_launcher can tell the UI elevation is needed.
func copyExecutable(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to open %s", src), err)
	}
	defer in.Close()

	tmp := dst + ".envhub-tmp"
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		if os.IsPermission(err) {
			return envherr.Wrap(envherr.Permission, fmt.Sprintf("no permission to write to %s", filepath.Dir(dst)), err)
		}
		return envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to create %s", tmp), err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to copy %s", src), err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return envherr.Wrap(envherr.IoError, "failed to close temp file", err)
	}
	if err := os.Chmod(tmp, 0o755); err != nil {
		os.Remove(tmp)
		return envherr.Wrap(envherr.IoError, "failed to set permissions", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to install %s", dst), err)
	}
	return nil
}

// RegisterApp records target as the binary alias should resolve to and
// creates its shim. The first call for a given alias creates a "default"
// profile and makes it active. Fails with AlreadyExists if alias is
// already registered. Follows the prepare-then-commit sequence: the
// shim is prepared under a temp name before state is written, and only
// renamed into place after the write succeeds — so a failure to prepare
// the shim or to write state leaves the prior state file untouched. If
// the final rename fails, the alias stays recorded with installed=false.
func RegisterApp(statePath, alias, target, launcherPath, installDir string) error {
	if strings.TrimSpace(alias) == "" || strings.TrimSpace(target) == "" {
		return envherr.New(envherr.ParseError, "alias and target must be non-empty")
	}
	s, err := state.Load(statePath)
	if err != nil {
		return err
	}
	if _, ok := s.Apps.Get(alias); ok {
		return envherr.New(envherr.AlreadyExists, fmt.Sprintf("app %q is already registered", alias))
	}

	tmpShim, err := shim.Prepare(installDir, alias, launcherPath)
	if err != nil {
		return err
	}

	app := state.NewApp()
	app.TargetBinary = target
	app.Profiles.Set("default", state.NewProfile())
	app.ActiveProfile = "default"
	app.InstallPath = installDir
	app.Installed = false
	s.Apps.Set(alias, app)

	if err := state.Save(statePath, s); err != nil {
		shim.Abort(tmpShim)
		return err
	}
	if _, err := shim.Commit(installDir, alias, tmpShim); err != nil {
		// State now names an alias whose shim never landed in its final
		// spot. Installed=false records exactly that, and a re-run of
		// install_shim repairs it.
		return err
	}
	app.Installed = true
	return state.Save(statePath, s)
}

// UnregisterApp removes alias and its shim file. A missing shim is not a
// failure: partial success is permitted.
func UnregisterApp(statePath, alias string) error {
	s, err := state.Load(statePath)
	if err != nil {
		return err
	}
	app, ok := s.Apps.Get(alias)
	if !ok {
		return envherr.New(envherr.NotFound, fmt.Sprintf("app %q is not registered", alias))
	}
	s.Apps.Delete(alias)
	if err := state.Save(statePath, s); err != nil {
		return err
	}
	if app.InstallPath != "" {
		if err := shim.Remove(app.InstallPath, alias); err != nil {
			return err
		}
	}
	return nil
}

// ListApps returns every registered alias in registration order.
func ListApps(statePath string) ([]string, error) {
	s, err := state.Load(statePath)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, s.Apps.Len())
	for pair := s.Apps.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names, nil
}

func getApp(s *state.State, alias string) (*state.App, error) {
	app, ok := s.Apps.Get(alias)
	if !ok {
		return nil, envherr.New(envherr.NotFound, fmt.Sprintf("app %q is not registered", alias))
	}
	return app, nil
}

// GetApp returns the full App record for alias, for read-only display.
func GetApp(statePath, alias string) (*state.App, error) {
	s, err := state.Load(statePath)
	if err != nil {
		return nil, err
	}
	return getApp(s, alias)
}

// GetProfile returns one profile of alias, for read-only display.
func GetProfile(statePath, alias, profile string) (*state.Profile, error) {
	app, err := GetApp(statePath, alias)
	if err != nil {
		return nil, err
	}
	p, ok := app.Profiles.Get(profile)
	if !ok {
		return nil, envherr.New(envherr.NotFound, fmt.Sprintf("profile %q not found for app %q", profile, alias))
	}
	return p, nil
}

// ListProfiles returns alias's profile names in insertion order.
func ListProfiles(statePath, alias string) ([]string, error) {
	s, err := state.Load(statePath)
	if err != nil {
		return nil, err
	}
	app, err := getApp(s, alias)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, app.Profiles.Len())
	for pair := app.Profiles.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names, nil
}

// ActiveProfile returns alias's currently active profile name, or ""
// if none is set.
func ActiveProfile(statePath, alias string) (string, error) {
	s, err := state.Load(statePath)
	if err != nil {
		return "", err
	}
	app, err := getApp(s, alias)
	if err != nil {
		return "", err
	}
	return app.ActiveProfile, nil
}

// SetActiveProfile makes profile the active one for alias. The profile
// must already exist.
func SetActiveProfile(statePath, alias, profile string) error {
	s, err := state.Load(statePath)
	if err != nil {
		return err
	}
	app, err := getApp(s, alias)
	if err != nil {
		return err
	}
	if _, ok := app.Profiles.Get(profile); !ok {
		return envherr.New(envherr.NotFound, fmt.Sprintf("profile %q not found for app %q", profile, alias))
	}
	app.ActiveProfile = profile
	return state.Save(statePath, s)
}

// AddProfile creates an empty profile for alias. If alias had no active
// profile yet, the new one becomes active.
func AddProfile(statePath, alias, profile string) error {
	if strings.TrimSpace(profile) == "" {
		return envherr.New(envherr.ParseError, "profile name must be non-empty")
	}
	s, err := state.Load(statePath)
	if err != nil {
		return err
	}
	app, err := getApp(s, alias)
	if err != nil {
		return err
	}
	if _, ok := app.Profiles.Get(profile); ok {
		return envherr.New(envherr.AlreadyExists, fmt.Sprintf("profile %q already exists for app %q", profile, alias))
	}
	app.Profiles.Set(profile, state.NewProfile())
	if app.ActiveProfile == "" {
		app.ActiveProfile = profile
	}
	return state.Save(statePath, s)
}

// RemoveProfile deletes profile from alias. If it was the active
// profile, ActiveProfile is cleared in the same write; the launcher
// additionally tolerates a stale reference on its own.
func RemoveProfile(statePath, alias, profile string) error {
	s, err := state.Load(statePath)
	if err != nil {
		return err
	}
	app, err := getApp(s, alias)
	if err != nil {
		return err
	}
	if _, ok := app.Profiles.Delete(profile); !ok {
		return envherr.New(envherr.NotFound, fmt.Sprintf("profile %q not found for app %q", profile, alias))
	}
	if app.ActiveProfile == profile {
		app.ActiveProfile = ""
	}
	return state.Save(statePath, s)
}

// RenameProfile renames a profile in place, preserving its position in
// insertion order, and updates ActiveProfile if it pointed at the old
// name.
func RenameProfile(statePath, alias, from, to string) error {
	if strings.TrimSpace(to) == "" {
		return envherr.New(envherr.ParseError, "target profile name must be non-empty")
	}
	s, err := state.Load(statePath)
	if err != nil {
		return err
	}
	app, err := getApp(s, alias)
	if err != nil {
		return err
	}
	if _, ok := app.Profiles.Get(to); ok {
		return envherr.New(envherr.AlreadyExists, fmt.Sprintf("profile %q already exists for app %q", to, alias))
	}
	renamed := orderedmap.New[string, *state.Profile]()
	found := false
	for pair := app.Profiles.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == from {
			renamed.Set(to, pair.Value)
			found = true
			continue
		}
		renamed.Set(pair.Key, pair.Value)
	}
	if !found {
		return envherr.New(envherr.NotFound, fmt.Sprintf("profile %q not found for app %q", from, alias))
	}
	app.Profiles = renamed
	if app.ActiveProfile == from {
		app.ActiveProfile = to
	}
	return state.Save(statePath, s)
}

// CloneProfile copies from's environment and command args into a new
// profile named to. from must exist and to must not.
func CloneProfile(statePath, alias, from, to string) error {
	if strings.TrimSpace(to) == "" {
		return envherr.New(envherr.ParseError, "target profile name must be non-empty")
	}
	s, err := state.Load(statePath)
	if err != nil {
		return err
	}
	app, err := getApp(s, alias)
	if err != nil {
		return err
	}
	src, ok := app.Profiles.Get(from)
	if !ok {
		return envherr.New(envherr.NotFound, fmt.Sprintf("source profile %q not found for app %q", from, alias))
	}
	if _, ok := app.Profiles.Get(to); ok {
		return envherr.New(envherr.AlreadyExists, fmt.Sprintf("target profile %q already exists", to))
	}
	clone := state.NewProfile()
	for pair := src.Env.Oldest(); pair != nil; pair = pair.Next() {
		clone.Env.Set(pair.Key, pair.Value)
	}
	clone.CommandArgs = append([]string(nil), src.CommandArgs...)
	app.Profiles.Set(to, clone)
	if app.ActiveProfile == "" {
		app.ActiveProfile = to
	}
	return state.Save(statePath, s)
}

// SetProfileEnv sets one environment variable within a profile.
func SetProfileEnv(statePath, alias, profile, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return envherr.New(envherr.ParseError, "environment key must be non-empty")
	}
	s, err := state.Load(statePath)
	if err != nil {
		return err
	}
	app, err := getApp(s, alias)
	if err != nil {
		return err
	}
	p, ok := app.Profiles.Get(profile)
	if !ok {
		return envherr.New(envherr.NotFound, fmt.Sprintf("profile %q not found for app %q", profile, alias))
	}
	p.Env.Set(key, value)
	return state.Save(statePath, s)
}

// RemoveProfileEnv deletes one environment variable from a profile.
func RemoveProfileEnv(statePath, alias, profile, key string) error {
	s, err := state.Load(statePath)
	if err != nil {
		return err
	}
	app, err := getApp(s, alias)
	if err != nil {
		return err
	}
	p, ok := app.Profiles.Get(profile)
	if !ok {
		return envherr.New(envherr.NotFound, fmt.Sprintf("profile %q not found for app %q", profile, alias))
	}
	if _, ok := p.Env.Delete(key); !ok {
		return envherr.New(envherr.NotFound, fmt.Sprintf("environment key %q not found in profile %q", key, profile))
	}
	return state.Save(statePath, s)
}

// SetCommandArgs replaces a profile's prepended argument vector.
func SetCommandArgs(statePath, alias, profile string, args []string) error {
	s, err := state.Load(statePath)
	if err != nil {
		return err
	}
	app, err := getApp(s, alias)
	if err != nil {
		return err
	}
	p, ok := app.Profiles.Get(profile)
	if !ok {
		return envherr.New(envherr.NotFound, fmt.Sprintf("profile %q not found for app %q", profile, alias))
	}
	p.CommandArgs = append([]string(nil), args...)
	return state.Save(statePath, s)
}

// InstallShim (re)installs the shim file for an already-registered alias,
// e.g. after install_launcher places a new launcher binary. It records
// the chosen directory and installed status on success, and warns with
// PathNotOnPath (after installing) if that directory is not itself on
// PATH — the install still happens; the UI is responsible for guiding the
// user to fix PATH.
func InstallShim(statePath, alias, launcherPath, installDir string) error {
	s, err := state.Load(statePath)
	if err != nil {
		return err
	}
	app, err := getApp(s, alias)
	if err != nil {
		return err
	}

	if _, err := shim.Install(installDir, alias, launcherPath); err != nil {
		return err
	}
	app.InstallPath = installDir
	app.Installed = true
	if err := state.Save(statePath, s); err != nil {
		return err
	}

	if !pathwalk.Contains(os.Getenv("PATH"), installDir) {
		return envherr.New(envherr.PathNotOnPath, fmt.Sprintf("%s is not on PATH; the %q shim was installed but cannot be found", installDir, alias))
	}
	return nil
}

// ShimPreflight reports whether installing a shim for alias into dir
// would shadow an existing command earlier on PATH (permitted, but worth
// surfacing) — used by the CLI/wizard before calling InstallShim.
func ShimPreflight(dir, alias string) shim.PreCheck {
	return shim.Check(dir, alias)
}

// DoctorApp runs the read-only diagnostic report for one alias: target
// resolvability, shim presence and currency, and PATH membership of its
// install directory.
func DoctorApp(statePath, alias, launcherPath string) (doctor.Report, error) {
	s, err := state.Load(statePath)
	if err != nil {
		return doctor.Report{}, err
	}
	app, err := getApp(s, alias)
	if err != nil {
		return doctor.Report{}, err
	}
	return doctor.App(alias, app, launcherPath, app.InstallPath), nil
}
