// Package clicfg holds the administrative CLI's own user preferences —
// default install mode, colored output, confirmation behavior — which are
// distinct from the domain State document in internal/state. Unlike the
// state file, this is ambient configuration: the launcher never reads it
// and no library operation depends on it.
package clicfg

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the administrative CLI's preferences file, conventionally
// $XDG_CONFIG_HOME/envhub/cli.toml (POSIX) or %APPDATA%\EnvHub\cli.toml
// (Windows) — a sibling of, but distinct from, config.json.
type Config struct {
	Version            int    `toml:"version"`
	DefaultInstallMode string `toml:"default_install_mode"`
	Color              *bool  `toml:"color"`
	ConfirmDestructive *bool  `toml:"confirm_destructive"`
}

// DefaultPath returns the conventional location of the CLI preferences
// file, independent of the domain state file's own path resolution.
func DefaultPath() (string, error) {
	if runtime.GOOS == "windows" {
		base := os.Getenv("APPDATA")
		if base == "" {
			return "", fmt.Errorf("clicfg: APPDATA is not set")
		}
		return filepath.Join(base, "EnvHub", "cli.toml"), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "envhub", "cli.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("clicfg: %w", err)
	}
	return filepath.Join(home, ".config", "envhub", "cli.toml"), nil
}

// Default returns a freshly allocated Config with every documented
// default applied, for callers that could not even resolve a preferences
// path.
func Default() *Config {
	cfg := defaults()
	return &cfg
}

// defaults returns a Config with every documented default applied, used
// both as the fallback when no file exists and as the base Load()
// decodes on top of.
func defaults() Config {
	// Each pointer gets its own bool: the TOML decoder writes through
	// non-nil pointers, so a shared one would let one key set both fields.
	color, confirm := true, true
	return Config{
		Version:            1,
		DefaultInstallMode: "user",
		Color:              &color,
		ConfirmDestructive: &confirm,
	}
}

// Load reads the CLI preferences file at path. A missing file is not an
// error: Load returns the documented defaults, so a first run sees
// sensible behavior before any preferences file has been written.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("clicfg.Load: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes cfg to path, creating its parent directory if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("clicfg.Save: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("clicfg.Save: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("clicfg.Save: %w", err)
	}
	return nil
}

// IsColor reports whether the CLI should emit colored/styled output.
func (c *Config) IsColor() bool {
	if c.Color == nil {
		return true
	}
	return *c.Color
}

// IsConfirmDestructive reports whether unregister/profile-delete should
// prompt for confirmation before proceeding.
func (c *Config) IsConfirmDestructive() bool {
	if c.ConfirmDestructive == nil {
		return true
	}
	return *c.ConfirmDestructive
}

func (c *Config) applyDefaults() {
	if c.DefaultInstallMode == "" {
		c.DefaultInstallMode = "user"
	}
	if c.Color == nil {
		t := true
		c.Color = &t
	}
	if c.ConfirmDestructive == nil {
		t := true
		c.ConfirmDestructive = &t
	}
}
