package launcher_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sontallive/envhub/internal/cmdexec"
	"github.com/sontallive/envhub/internal/launcher"
	"github.com/sontallive/envhub/internal/library"
	"github.com/sontallive/envhub/internal/testutil"
)

// runDecision executes a resolved Decision the way the launcher's
// handoff would, but as an observable child process.
func runDecision(t *testing.T, d *launcher.Decision) string {
	t.Helper()
	out, code, err := cmdexec.OSRunner{}.Run(context.Background(), d.Argv, d.Env)
	require.NoError(t, err)
	require.Equal(t, 0, code)
	return string(out)
}

// invoke resolves one shim invocation and runs the result.
func invoke(t *testing.T, statePath, shimPath, launcherBin string, args ...string) string {
	t.Helper()
	argv := append([]string{shimPath}, args...)
	d, failure := launcher.Resolve(statePath, argv, []string{"PATH=/usr/bin"}, "/usr/bin", launcherBin)
	require.Nil(t, failure)
	return runDecision(t, d)
}

func TestScenario_ProfileSwitching(t *testing.T) {
	statePath := testutil.TempStatePath(t)
	installDir := testutil.TempBinDir(t)
	launcherBin := testutil.FakeLauncher(t, testutil.TempBinDir(t))

	// The target prints the profile-provided variable, then its args.
	targetDir := testutil.TempBinDir(t)
	target := testutil.MakeExecutable(t, targetDir, "claude-stub", `echo "$API $@"`)

	require.NoError(t, library.RegisterApp(statePath, "iclaude", target, launcherBin, installDir))
	require.NoError(t, library.AddProfile(statePath, "iclaude", "work"))
	require.NoError(t, library.SetProfileEnv(statePath, "iclaude", "work", "API", "W"))
	require.NoError(t, library.AddProfile(statePath, "iclaude", "home"))
	require.NoError(t, library.SetProfileEnv(statePath, "iclaude", "home", "API", "H"))
	require.NoError(t, library.SetActiveProfile(statePath, "iclaude", "work"))

	shim := filepath.Join(installDir, "iclaude")
	assert.Equal(t, "W hello\n", invoke(t, statePath, shim, launcherBin, "hello"))

	require.NoError(t, library.SetActiveProfile(statePath, "iclaude", "home"))
	assert.Equal(t, "H hello\n", invoke(t, statePath, shim, launcherBin, "hello"))
}

func TestScenario_CommandArgsPrepend(t *testing.T) {
	statePath := testutil.TempStatePath(t)
	installDir := testutil.TempBinDir(t)
	launcherBin := testutil.FakeLauncher(t, testutil.TempBinDir(t))
	target := testutil.MakeExecutable(t, testutil.TempBinDir(t), "echo-stub", `echo "$@"`)

	require.NoError(t, library.RegisterApp(statePath, "alias", target, launcherBin, installDir))
	require.NoError(t, library.SetCommandArgs(statePath, "alias", "default", []string{"--flag", "v"}))

	out := invoke(t, statePath, filepath.Join(installDir, "alias"), launcherBin, "extra")
	assert.Equal(t, "--flag v extra\n", out)
}

func TestScenario_MissingProfileFallsBackByInsertionOrder(t *testing.T) {
	statePath := testutil.TempStatePath(t)
	installDir := testutil.TempBinDir(t)
	launcherBin := testutil.FakeLauncher(t, testutil.TempBinDir(t))
	target := testutil.MakeExecutable(t, testutil.TempBinDir(t), "echo-stub", `echo "$MARK $@"`)

	require.NoError(t, library.RegisterApp(statePath, "iclaude", target, launcherBin, installDir))
	require.NoError(t, library.AddProfile(statePath, "iclaude", "a"))
	require.NoError(t, library.SetProfileEnv(statePath, "iclaude", "a", "MARK", "A"))
	require.NoError(t, library.AddProfile(statePath, "iclaude", "b"))
	require.NoError(t, library.SetProfileEnv(statePath, "iclaude", "b", "MARK", "B"))
	require.NoError(t, library.SetActiveProfile(statePath, "iclaude", "a"))
	require.NoError(t, library.RemoveProfile(statePath, "iclaude", "default"))
	require.NoError(t, library.RemoveProfile(statePath, "iclaude", "a"))

	// Active was cleared with "a"; insertion order now starts at "b".
	out := invoke(t, statePath, filepath.Join(installDir, "iclaude"), launcherBin, "x")
	assert.Equal(t, "B x\n", out)
}

func TestScenario_EmptyStatePassthrough(t *testing.T) {
	launcherBin := testutil.FakeLauncher(t, testutil.TempBinDir(t))
	shimDir := testutil.TempBinDir(t)
	realDir := testutil.TempBinDir(t)
	testutil.MakeExecutable(t, realDir, "echo2", `echo "$@"`)

	// The config file never exists; only argv[0] names the alias.
	statePath := testutil.TempStatePath(t)

	d, failure := launcher.Resolve(statePath,
		[]string{filepath.Join(shimDir, "echo2"), "hi"},
		[]string{"PATH=ignored"},
		testutil.PathWith(shimDir, realDir), launcherBin)
	require.Nil(t, failure)
	assert.Equal(t, "hi\n", runDecision(t, d))
}
