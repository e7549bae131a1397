// Package launcher implements the execution protocol the envhub-launcher
// binary runs on every invocation: self-identify from argv[0], read the
// state file read-only, resolve the target binary with anti-loop PATH
// walking, merge the active profile's environment, and hand off to the
// target. The package is deliberately leaf-level: it depends on
// internal/state and internal/pathwalk but never on internal/library,
// which the launcher never calls.
package launcher

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sontallive/envhub/internal/pathwalk"
	"github.com/sontallive/envhub/internal/state"
	"github.com/sontallive/envhub/internal/version"
)

// CanonicalName is the launcher's own recognizable name: the binary
// that was invoked directly, rather than through a shim, prints the
// diagnostic from DirectInvocationMessage instead of silently recursing.
const CanonicalName = "envhub-launcher"

// Exit codes occupy the documented 120-127 range; 0 is
// reserved for the target's own exit code and is never returned by the
// launcher's own failure outlets.
const (
	ExitDirectInvocation = 120
	ExitParseError       = 121
	ExitIoError          = 122
	ExitTargetNotFound   = 123
	ExitHandoffFailed    = 124
)

// Failure is a launcher-side error carrying the exit code its failure
// outlet maps to.
type Failure struct {
	Code    int
	Message string
}

func (f *Failure) Error() string { return f.Message }

func fail(code int, format string, args ...any) *Failure {
	return &Failure{Code: code, Message: fmt.Sprintf(format, args...)}
}

// SelfIdentify extracts the alias from argv0: the final
// path component, with a trailing ".exe" stripped on Windows.
func SelfIdentify(argv0 string) string {
	name := filepath.Base(argv0)
	if runtime.GOOS == "windows" {
		name = strings.TrimSuffix(name, ".exe")
	}
	return name
}

// Decision is the fully resolved plan for one invocation: the target
// executable, its complete argument vector (argv[0] plus command_args
// plus the forwarded arguments), and the merged environment.
type Decision struct {
	TargetPath string
	Argv       []string
	Env        []string
}

// DirectInvocationMessage is what the launcher prints when invoked under
// its own canonical name instead of through a shim, including the
// --version/--help handling.
func DirectInvocationMessage(alias string, args []string) (string, bool) {
	for _, a := range args {
		switch a {
		case "--version":
			return fmt.Sprintf("envhub-launcher %s\n", version.Number), true
		case "--help", "-h":
			return "envhub-launcher is installed as a shim under another name; it is not meant to be invoked directly.\n", true
		}
	}
	return fmt.Sprintf(
		"envhub: %s was invoked directly instead of through a shim.\n"+
			"Install it as an alias's shim with install_shim, then invoke that alias.\n", alias), false
}

// Resolve runs steps 2-8 of the execution protocol: load state, look up
// the alias, select a profile, resolve the target with anti-loop PATH
// walking, and merge the environment. args is the full argv the launcher
// received, including argv[0]. baseEnv is the process environment
// (os.Environ()); pathVar is the PATH value to walk (almost always
// baseEnv's own PATH, split out so tests can substitute a PATH more
// easily than a whole environment).
func Resolve(statePath string, args, baseEnv []string, pathVar, selfPath string) (*Decision, *Failure) {
	alias := SelfIdentify(args[0])

	s, loadErr := loadState(statePath)
	if loadErr != nil {
		return nil, loadErr
	}

	var app *state.App
	if s != nil {
		app, _ = s.Apps.Get(alias)
	}

	var targetName string
	var profile *state.Profile
	if app == nil {
		// Passthrough fallback: no configuration for this
		// alias, so behave like the aliased program itself.
		targetName = alias
	} else {
		targetName = app.TargetBinary
		profile = selectProfile(app)
	}

	targetPath, err := resolveTarget(targetName, pathVar, selfPath)
	if err != nil {
		return nil, fail(ExitTargetNotFound, "envhub: target not found: %s", targetName)
	}

	argv := buildArgv(targetPath, profile, args[1:])
	env := mergeEnv(baseEnv, profile)

	return &Decision{TargetPath: targetPath, Argv: argv, Env: env}, nil
}

// loadState mirrors state.Load but classifies a missing file as "no
// state", not an error, and distinguishes parse failures from I/O
// failures for the launcher's distinct exit codes.
func loadState(path string) (*state.State, *Failure) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fail(ExitIoError, "envhub: failed to read %s: %v", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		// An empty file is a blank slate, not a parse error; the
		// passthrough fallback still applies.
		return nil, nil
	}
	s := state.New()
	if uerr := json.Unmarshal(data, s); uerr != nil {
		return nil, fail(ExitParseError, "envhub: malformed state file %s: %v", path, uerr)
	}
	state.Validate(s)
	return s, nil
}

// selectProfile returns the active profile if set and
// present, otherwise the first profile by insertion order, otherwise nil
// (treated as an empty variable map by mergeEnv/buildArgv).
func selectProfile(app *state.App) *state.Profile {
	if app.ActiveProfile != "" {
		if p, ok := app.Profiles.Get(app.ActiveProfile); ok {
			return p
		}
	}
	if first := app.Profiles.Oldest(); first != nil {
		return first.Value
	}
	return nil
}

// resolveTarget is the anti-loop target resolution step: an absolute
// target_binary is used as-is; otherwise PATH is walked
// left-to-right, skipping any candidate that is the launcher itself.
func resolveTarget(targetName, pathVar, selfPath string) (string, error) {
	if filepath.IsAbs(targetName) {
		return targetName, nil
	}
	hit := pathwalk.FindInPath(pathVar, targetName, selfPath)
	if hit == "" {
		return "", fmt.Errorf("not found")
	}
	return hit, nil
}

// buildArgv assembles target as argv[0], then the
// profile's command_args, then the arguments the launcher received
// (excluding its own argv[0]).
func buildArgv(targetPath string, profile *state.Profile, forwarded []string) []string {
	argv := []string{targetPath}
	if profile != nil {
		argv = append(argv, profile.CommandArgs...)
	}
	argv = append(argv, forwarded...)
	return argv
}

// mergeEnv starts from the base environment and overlays every profile
// variable; it never removes a variable.
func mergeEnv(baseEnv []string, profile *state.Profile) []string {
	if profile == nil || profile.Env == nil || profile.Env.Len() == 0 {
		return append([]string(nil), baseEnv...)
	}
	merged := make([]string, 0, len(baseEnv)+profile.Env.Len())
	overridden := make(map[string]bool, profile.Env.Len())
	for pair := profile.Env.Oldest(); pair != nil; pair = pair.Next() {
		overridden[pair.Key] = true
	}
	for _, kv := range baseEnv {
		if key, _, ok := splitEnv(kv); ok && overridden[key] {
			continue
		}
		merged = append(merged, kv)
	}
	for pair := profile.Env.Oldest(); pair != nil; pair = pair.Next() {
		merged = append(merged, pair.Key+"="+pair.Value)
	}
	return merged
}

func splitEnv(kv string) (key, value string, ok bool) {
	i := strings.IndexByte(kv, '=')
	if i < 0 {
		return "", "", false
	}
	return kv[:i], kv[i+1:], true
}
