package pathwalk_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sontallive/envhub/internal/pathwalk"
	"github.com/sontallive/envhub/internal/testutil"
)

func TestDirs_SplitsAndDropsEmpty(t *testing.T) {
	sep := pathwalk.ListSeparator()
	dirs := pathwalk.Dirs("/a" + sep + sep + "/b")
	assert.Equal(t, []string{"/a", "/b"}, dirs)
}

func TestContains(t *testing.T) {
	path := testutil.PathWith("/usr/bin", "/opt/tools")
	assert.True(t, pathwalk.Contains(path, "/opt/tools"))
	assert.False(t, pathwalk.Contains(path, "/opt"))
}

func TestFindInPath_FirstHitWins(t *testing.T) {
	first := testutil.TempBinDir(t)
	second := testutil.TempBinDir(t)
	want := testutil.MakeExecutable(t, first, "tool", "")
	testutil.MakeExecutable(t, second, "tool", "")

	hit := pathwalk.FindInPath(testutil.PathWith(first, second), "tool", "")
	assert.Equal(t, want, hit)
}

func TestFindInPath_SkipsNonExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute bits are POSIX-only")
	}
	first := testutil.TempBinDir(t)
	second := testutil.TempBinDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(first, "tool"), []byte("data"), 0o644))
	want := testutil.MakeExecutable(t, second, "tool", "")

	hit := pathwalk.FindInPath(testutil.PathWith(first, second), "tool", "")
	assert.Equal(t, want, hit)
}

func TestFindInPath_SkipsSelfSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink shims are POSIX-only")
	}
	launcherDir := testutil.TempBinDir(t)
	launcher := testutil.FakeLauncher(t, launcherDir)

	shimDir := testutil.TempBinDir(t)
	require.NoError(t, os.Symlink(launcher, filepath.Join(shimDir, "ls2")))

	realDir := testutil.TempBinDir(t)
	want := testutil.MakeExecutable(t, realDir, "ls2", "")

	hit := pathwalk.FindInPath(testutil.PathWith(shimDir, realDir), "ls2", launcher)
	assert.Equal(t, want, hit)
}

func TestFindInPath_SkipsSelfHardlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hardlink comparison is POSIX-only")
	}
	launcherDir := testutil.TempBinDir(t)
	launcher := testutil.FakeLauncher(t, launcherDir)

	shimDir := testutil.TempBinDir(t)
	require.NoError(t, os.Link(launcher, filepath.Join(shimDir, "tool")))

	hit := pathwalk.FindInPath(testutil.PathWith(shimDir), "tool", launcher)
	assert.Empty(t, hit)
}

func TestFindInPath_NothingSurvives(t *testing.T) {
	launcherDir := testutil.TempBinDir(t)
	launcher := testutil.FakeLauncher(t, launcherDir)

	shimDir := testutil.TempBinDir(t)
	require.NoError(t, os.Symlink(launcher, filepath.Join(shimDir, "ghost")))

	hit := pathwalk.FindInPath(testutil.PathWith(shimDir), "ghost", launcher)
	assert.Empty(t, hit)
}

func TestSameExecutable_ThroughSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks are POSIX-only here")
	}
	dir := testutil.TempBinDir(t)
	real := testutil.MakeExecutable(t, dir, "real", "")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(real, link))

	same, err := pathwalk.SameExecutable(link, real)
	require.NoError(t, err)
	assert.True(t, same)

	other := testutil.MakeExecutable(t, dir, "other", "")
	same, err = pathwalk.SameExecutable(other, real)
	require.NoError(t, err)
	assert.False(t, same)
}
