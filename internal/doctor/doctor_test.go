package doctor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sontallive/envhub/internal/doctor"
	"github.com/sontallive/envhub/internal/shim"
	"github.com/sontallive/envhub/internal/state"
	"github.com/sontallive/envhub/internal/testutil"
)

func findResult(t *testing.T, r doctor.Report, name string) doctor.Result {
	t.Helper()
	for _, res := range r.Results {
		if res.Name == name {
			return res
		}
	}
	t.Fatalf("no %q result in report", name)
	return doctor.Result{}
}

func healthyApp(t *testing.T) (*state.App, string, string) {
	t.Helper()
	launcher := testutil.FakeLauncher(t, testutil.TempBinDir(t))
	installDir := testutil.TempBinDir(t)
	_, err := shim.Install(installDir, "iclaude", launcher)
	require.NoError(t, err)

	targetDir := testutil.TempBinDir(t)
	target := testutil.MakeExecutable(t, targetDir, "claude", "")

	app := state.NewApp()
	app.TargetBinary = target
	app.Profiles.Set("default", state.NewProfile())
	app.ActiveProfile = "default"
	app.Installed = true
	app.InstallPath = installDir
	return app, launcher, installDir
}

func TestApp_AllHealthy(t *testing.T) {
	app, launcher, installDir := healthyApp(t)
	t.Setenv("PATH", testutil.PathWith(installDir, "/usr/bin"))

	r := doctor.App("iclaude", app, launcher, installDir)
	assert.Equal(t, doctor.StatusOK, findResult(t, r, "target_binary").Status)
	assert.Equal(t, doctor.StatusOK, findResult(t, r, "shim").Status)
	assert.Equal(t, doctor.StatusOK, findResult(t, r, "install_dir").Status)
	assert.Equal(t, doctor.StatusOK, findResult(t, r, "active_profile").Status)
}

func TestApp_MissingShimWithInstalledFlag(t *testing.T) {
	app, launcher, installDir := healthyApp(t)
	require.NoError(t, shim.Remove(installDir, "iclaude"))

	r := doctor.App("iclaude", app, launcher, installDir)
	res := findResult(t, r, "shim")
	assert.Equal(t, doctor.StatusFail, res.Status)
	assert.NotEmpty(t, res.Fix)
}

func TestApp_InstallDirOffPath(t *testing.T) {
	app, launcher, installDir := healthyApp(t)
	t.Setenv("PATH", "/usr/bin")

	r := doctor.App("iclaude", app, launcher, installDir)
	assert.Equal(t, doctor.StatusFail, findResult(t, r, "install_dir").Status)
}

func TestApp_AbsentTargetOnPath(t *testing.T) {
	app, launcher, installDir := healthyApp(t)
	app.TargetBinary = "no-such-command-at-all"
	t.Setenv("PATH", installDir)

	r := doctor.App("iclaude", app, launcher, installDir)
	assert.Equal(t, doctor.StatusFail, findResult(t, r, "target_binary").Status)
}

func TestApp_ClearedActiveProfileFallsBackToFirst(t *testing.T) {
	app, launcher, installDir := healthyApp(t)
	app.ActiveProfile = ""

	r := doctor.App("iclaude", app, launcher, installDir)
	res := findResult(t, r, "active_profile")
	assert.Equal(t, doctor.StatusWarn, res.Status)
	// The launcher falls back by insertion order, and the report says so.
	assert.Contains(t, res.Message, `"default"`)
}

func TestApp_NoProfilesAtAll(t *testing.T) {
	app, launcher, installDir := healthyApp(t)
	app.ActiveProfile = ""
	app.Profiles = state.NewApp().Profiles

	r := doctor.App("iclaude", app, launcher, installDir)
	res := findResult(t, r, "active_profile")
	assert.Equal(t, doctor.StatusWarn, res.Status)
	assert.Contains(t, res.Message, "empty variable map")
}

func TestApp_StaleActiveProfile(t *testing.T) {
	app, launcher, installDir := healthyApp(t)
	app.ActiveProfile = "vanished"

	r := doctor.App("iclaude", app, launcher, installDir)
	assert.Equal(t, doctor.StatusFail, findResult(t, r, "active_profile").Status)
}
