package launcher_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sontallive/envhub/internal/launcher"
	"github.com/sontallive/envhub/internal/library"
	"github.com/sontallive/envhub/internal/testutil"
)

func TestSelfIdentify(t *testing.T) {
	assert.Equal(t, "iclaude", launcher.SelfIdentify("/home/u/.local/bin/iclaude"))
	assert.Equal(t, "iclaude", launcher.SelfIdentify("iclaude"))
	if runtime.GOOS == "windows" {
		assert.Equal(t, "iclaude", launcher.SelfIdentify(`C:\bin\iclaude.exe`))
	}
}

func TestDirectInvocationMessage(t *testing.T) {
	msg, handled := launcher.DirectInvocationMessage(launcher.CanonicalName, nil)
	assert.False(t, handled)
	assert.Contains(t, msg, "invoked directly")

	msg, handled = launcher.DirectInvocationMessage(launcher.CanonicalName, []string{"--version"})
	assert.True(t, handled)
	assert.Contains(t, msg, "envhub-launcher")

	_, handled = launcher.DirectInvocationMessage(launcher.CanonicalName, []string{"--help"})
	assert.True(t, handled)
}

func TestResolve_MergesActiveProfileEnv(t *testing.T) {
	statePath := testutil.WriteState(t, `{
  "apps": {
    "iclaude": {
      "target_binary": "/usr/bin/echo",
      "active_profile": "work",
      "profiles": {
        "work": {"API": "W", "EXTRA": "1"},
        "home": {"API": "H"}
      }
    }
  }
}`)

	base := []string{"PATH=/usr/bin", "API=old", "UNTOUCHED=keep"}
	d, failure := launcher.Resolve(statePath, []string{"/shims/iclaude", "hello"}, base, "/usr/bin", "")
	require.Nil(t, failure)

	assert.Equal(t, "/usr/bin/echo", d.TargetPath)
	assert.Equal(t, []string{"/usr/bin/echo", "hello"}, d.Argv)
	assert.Contains(t, d.Env, "API=W")
	assert.Contains(t, d.Env, "EXTRA=1")
	assert.Contains(t, d.Env, "UNTOUCHED=keep")
	assert.NotContains(t, d.Env, "API=old")
}

func TestResolve_NoVariableIsRemoved(t *testing.T) {
	statePath := testutil.WriteState(t, `{
  "apps": {
    "e": {"target_binary": "/usr/bin/echo", "active_profile": "p", "profiles": {"p": {"A": ""}}}
  }
}`)

	base := []string{"A=x", "B=y"}
	d, failure := launcher.Resolve(statePath, []string{"e"}, base, "", "")
	require.Nil(t, failure)
	// Overlaying with an empty value is still an overlay, not a removal.
	assert.Contains(t, d.Env, "A=")
	assert.Contains(t, d.Env, "B=y")
}

func TestResolve_CommandArgsPrepend(t *testing.T) {
	statePath := testutil.WriteState(t, `{
  "apps": {
    "alias": {
      "target_binary": "/usr/bin/echo",
      "active_profile": "p",
      "profiles": {"p": {"command_args": ["--flag", "v"]}}
    }
  }
}`)

	d, failure := launcher.Resolve(statePath, []string{"alias", "extra"}, nil, "", "")
	require.Nil(t, failure)
	assert.Equal(t, []string{"/usr/bin/echo", "--flag", "v", "extra"}, d.Argv)
}

func TestResolve_StaleActiveFallsBackToFirstProfile(t *testing.T) {
	// The active profile was deleted out from under us; insertion order decides.
	statePath := testutil.WriteState(t, `{
  "apps": {
    "iclaude": {
      "target_binary": "/usr/bin/echo",
      "active_profile": "a",
      "profiles": {"b": {"API": "B"}, "c": {"API": "C"}}
    }
  }
}`)

	d, failure := launcher.Resolve(statePath, []string{"iclaude", "x"}, nil, "", "")
	require.Nil(t, failure)
	assert.Contains(t, d.Env, "API=B")
}

func TestResolve_NoProfilesMeansEmptyOverlay(t *testing.T) {
	statePath := testutil.WriteState(t, `{
  "apps": {"bare": {"target_binary": "/usr/bin/echo", "profiles": {}}}
}`)

	base := []string{"KEEP=1"}
	d, failure := launcher.Resolve(statePath, []string{"bare"}, base, "", "")
	require.Nil(t, failure)
	assert.Equal(t, base, d.Env)
}

func TestResolve_AbsoluteTargetSkipsPathSearch(t *testing.T) {
	// An absolute target is used as-is, even if nothing by
	// that name exists on PATH.
	statePath := testutil.WriteState(t, `{
  "apps": {"myls": {"target_binary": "/bin/ls", "profiles": {}}}
}`)

	d, failure := launcher.Resolve(statePath, []string{"myls", "/tmp"}, nil, "", "")
	require.Nil(t, failure)
	assert.Equal(t, "/bin/ls", d.TargetPath)
	assert.Equal(t, []string{"/bin/ls", "/tmp"}, d.Argv)
}

func TestResolve_AntiLoop(t *testing.T) {
	// The shim is the highest-priority PATH hit for its own
	// target name; resolution must land on the next candidate.
	launcherBin := testutil.FakeLauncher(t, testutil.TempBinDir(t))
	shimDir := testutil.TempBinDir(t)
	require.NoError(t, os.Symlink(launcherBin, filepath.Join(shimDir, "ls2")))
	realDir := testutil.TempBinDir(t)
	real := testutil.MakeExecutable(t, realDir, "ls2", "")

	statePath := testutil.WriteState(t, `{
  "apps": {"ls2": {"target_binary": "ls2", "profiles": {}}}
}`)

	pathVar := testutil.PathWith(shimDir, realDir)
	d, failure := launcher.Resolve(statePath, []string{filepath.Join(shimDir, "ls2")}, nil, pathVar, launcherBin)
	require.Nil(t, failure)
	assert.Equal(t, real, d.TargetPath)
}

func TestResolve_AntiLoopNoSurvivor(t *testing.T) {
	launcherBin := testutil.FakeLauncher(t, testutil.TempBinDir(t))
	shimDir := testutil.TempBinDir(t)
	require.NoError(t, os.Symlink(launcherBin, filepath.Join(shimDir, "ghost")))

	statePath := testutil.WriteState(t, `{
  "apps": {"ghost": {"target_binary": "ghost", "profiles": {}}}
}`)

	_, failure := launcher.Resolve(statePath, []string{filepath.Join(shimDir, "ghost")}, nil, shimDir, launcherBin)
	require.NotNil(t, failure)
	assert.Equal(t, launcher.ExitTargetNotFound, failure.Code)
	assert.Contains(t, failure.Message, "target not found")
}

func TestResolve_PassthroughFallback(t *testing.T) {
	// No state file at all; the alias matches an
	// unrelated binary further along PATH.
	launcherBin := testutil.FakeLauncher(t, testutil.TempBinDir(t))
	shimDir := testutil.TempBinDir(t)
	require.NoError(t, os.Symlink(launcherBin, filepath.Join(shimDir, "echo2")))
	realDir := testutil.TempBinDir(t)
	real := testutil.MakeExecutable(t, realDir, "echo2", "")

	statePath := testutil.TempStatePath(t) // never written

	pathVar := testutil.PathWith(shimDir, realDir)
	d, failure := launcher.Resolve(statePath, []string{filepath.Join(shimDir, "echo2"), "hi"}, nil, pathVar, launcherBin)
	require.Nil(t, failure)
	assert.Equal(t, real, d.TargetPath)
	assert.Equal(t, []string{real, "hi"}, d.Argv)
}

func TestResolve_EmptyStateFileIsPassthrough(t *testing.T) {
	realDir := testutil.TempBinDir(t)
	real := testutil.MakeExecutable(t, realDir, "tool", "")
	statePath := testutil.WriteState(t, "")

	d, failure := launcher.Resolve(statePath, []string{"tool"}, nil, realDir, "")
	require.Nil(t, failure)
	assert.Equal(t, real, d.TargetPath)
}

func TestResolve_MalformedStateFails(t *testing.T) {
	statePath := testutil.WriteState(t, `{"apps":`)

	_, failure := launcher.Resolve(statePath, []string{"anything"}, nil, "", "")
	require.NotNil(t, failure)
	assert.Equal(t, launcher.ExitParseError, failure.Code)
	assert.Contains(t, failure.Message, statePath)
}

func TestResolve_UnknownAliasAndNoPathHit(t *testing.T) {
	statePath := testutil.TempStatePath(t)

	_, failure := launcher.Resolve(statePath, []string{"no-such-tool-anywhere"}, nil, testutil.TempBinDir(t), "")
	require.NotNil(t, failure)
	assert.Equal(t, launcher.ExitTargetNotFound, failure.Code)
}

func TestRegisterThenResolve_UsesLibraryWrittenState(t *testing.T) {
	statePath := testutil.TempStatePath(t)
	installDir := testutil.TempBinDir(t)
	launcherBin := testutil.FakeLauncher(t, testutil.TempBinDir(t))

	require.NoError(t, library.RegisterApp(statePath, "iclaude", "/usr/bin/echo", launcherBin, installDir))
	require.NoError(t, library.SetProfileEnv(statePath, "iclaude", "default", "API", "W"))

	d, failure := launcher.Resolve(statePath, []string{filepath.Join(installDir, "iclaude"), "hello"}, []string{"HOME=/tmp"}, "", launcherBin)
	require.Nil(t, failure)
	assert.Equal(t, []string{"/usr/bin/echo", "hello"}, d.Argv)
	assert.Contains(t, d.Env, "API=W")
}
