package clicfg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sontallive/envhub/internal/clicfg"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := clicfg.Load(filepath.Join(t.TempDir(), "cli.toml"))
	require.NoError(t, err)

	assert.Equal(t, "user", cfg.DefaultInstallMode)
	assert.True(t, cfg.IsColor())
	assert.True(t, cfg.IsConfirmDestructive())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.toml")

	f := false
	cfg := &clicfg.Config{
		Version:            1,
		DefaultInstallMode: "global",
		Color:              &f,
	}
	require.NoError(t, clicfg.Save(path, cfg))

	loaded, err := clicfg.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "global", loaded.DefaultInstallMode)
	assert.False(t, loaded.IsColor())
	// Unset keys fall back to their documented defaults.
	assert.True(t, loaded.IsConfirmDestructive())
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_install_mode = [broken"), 0o600))

	_, err := clicfg.Load(path)
	assert.Error(t, err)
}
