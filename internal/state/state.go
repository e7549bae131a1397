// Package state implements the canonical JSON state document: its data
// model, path resolution, loading, validation, and atomic saving.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/sontallive/envhub/internal/envherr"
)

// commandArgsKey is the one reserved key in a Profile's flat JSON object.
const commandArgsKey = "command_args"

// Profile is a named set of environment variables for one App, plus an
// optional fixed argument prefix. Profile round-trips as a flat JSON
// object: every key is an environment variable name except commandArgsKey,
// which holds the argument prefix array.
type Profile struct {
	Env         *orderedmap.OrderedMap[string, string]
	CommandArgs []string
}

// NewProfile returns an empty Profile ready for use.
func NewProfile() *Profile {
	return &Profile{Env: orderedmap.New[string, string]()}
}

// MarshalJSON flattens Env and CommandArgs into one JSON object, preserving
// Env's insertion order and appending command_args last when present.
func (p Profile) MarshalJSON() ([]byte, error) {
	if p.Env == nil {
		p.Env = orderedmap.New[string, string]()
	}
	flat := orderedmap.New[string, json.RawMessage]()
	for pair := p.Env.Oldest(); pair != nil; pair = pair.Next() {
		raw, err := json.Marshal(pair.Value)
		if err != nil {
			return nil, err
		}
		flat.Set(pair.Key, raw)
	}
	if len(p.CommandArgs) > 0 {
		raw, err := json.Marshal(p.CommandArgs)
		if err != nil {
			return nil, err
		}
		flat.Set(commandArgsKey, raw)
	}
	return flat.MarshalJSON()
}

// UnmarshalJSON splits the reserved command_args key back out of the flat
// object, treating every other key as an environment variable.
func (p *Profile) UnmarshalJSON(data []byte) error {
	flat := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, flat); err != nil {
		return err
	}
	p.Env = orderedmap.New[string, string]()
	p.CommandArgs = nil
	for pair := flat.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == commandArgsKey {
			var args []string
			if err := json.Unmarshal(pair.Value, &args); err != nil {
				return fmt.Errorf("state: command_args: %w", err)
			}
			p.CommandArgs = args
			continue
		}
		var v string
		if err := json.Unmarshal(pair.Value, &v); err != nil {
			return fmt.Errorf("state: env key %q: %w", pair.Key, err)
		}
		p.Env.Set(pair.Key, v)
	}
	return nil
}

// App is one registered alias: the binary it ultimately launches, which
// profile is currently active, and the set of profiles available to it.
// Extra preserves any key of the app object this version of the schema
// does not know about, so that load -> save round-trips a newer document
// unchanged.
type App struct {
	Installed     bool                                     `json:"installed"`
	TargetBinary  string                                    `json:"target_binary"`
	InstallPath   string                                    `json:"install_path,omitempty"`
	ActiveProfile string                                    `json:"active_profile,omitempty"`
	Profiles      *orderedmap.OrderedMap[string, *Profile] `json:"profiles"`
	Extra         map[string]json.RawMessage                `json:"-"`
}

// appKnownFields lists the JSON keys App decodes by name; everything else
// falls into Extra.
var appKnownFields = map[string]bool{
	"installed": true, "target_binary": true, "install_path": true,
	"active_profile": true, "profiles": true,
}

// NewApp returns an App with an initialized, empty profile map.
func NewApp() *App {
	return &App{Profiles: orderedmap.New[string, *Profile]()}
}

// MarshalJSON emits App's known fields plus any Extra keys captured at
// load time, so a document written by a newer EnvHub version round-trips
// through an older one unchanged.
func (a App) MarshalJSON() ([]byte, error) {
	if a.Profiles == nil {
		a.Profiles = orderedmap.New[string, *Profile]()
	}
	out := orderedmap.New[string, json.RawMessage]()
	set := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		out.Set(key, raw)
		return nil
	}
	if err := set("installed", a.Installed); err != nil {
		return nil, err
	}
	if err := set("target_binary", a.TargetBinary); err != nil {
		return nil, err
	}
	if a.InstallPath != "" {
		if err := set("install_path", a.InstallPath); err != nil {
			return nil, err
		}
	}
	if a.ActiveProfile != "" {
		if err := set("active_profile", a.ActiveProfile); err != nil {
			return nil, err
		}
	}
	if err := set("profiles", a.Profiles); err != nil {
		return nil, err
	}
	for _, k := range sortedKeys(a.Extra) {
		out.Set(k, a.Extra[k])
	}
	return out.MarshalJSON()
}

// sortedKeys keeps the serialized position of unknown fields stable
// across writes; their original order is not recoverable from a Go map.
func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnmarshalJSON decodes App's known fields and stashes everything else in
// Extra.
func (a *App) UnmarshalJSON(data []byte) error {
	var wire struct {
		Installed     bool                                      `json:"installed"`
		TargetBinary  string                                    `json:"target_binary"`
		InstallPath   string                                    `json:"install_path,omitempty"`
		ActiveProfile string                                    `json:"active_profile,omitempty"`
		Profiles      *orderedmap.OrderedMap[string, *Profile] `json:"profiles"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("state: app: %w", err)
	}
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("state: app: %w", err)
	}
	a.Installed = wire.Installed
	a.TargetBinary = wire.TargetBinary
	a.InstallPath = wire.InstallPath
	a.ActiveProfile = wire.ActiveProfile
	a.Profiles = wire.Profiles
	if a.Profiles == nil {
		a.Profiles = orderedmap.New[string, *Profile]()
	}
	a.Extra = nil
	for k, v := range raw {
		if appKnownFields[k] {
			continue
		}
		if a.Extra == nil {
			a.Extra = map[string]json.RawMessage{}
		}
		a.Extra[k] = v
	}
	return nil
}

// State is the whole document persisted to config.json: every registered
// App, keyed by alias, in registration order, plus any top-level key this
// version of the schema does not know about.
type State struct {
	Apps  *orderedmap.OrderedMap[string, *App]
	Extra map[string]json.RawMessage
}

// MarshalJSON serializes State as {"apps": {...}, ...Extra} with Apps in
// insertion order and unknown top-level keys preserved verbatim.
func (s State) MarshalJSON() ([]byte, error) {
	if s.Apps == nil {
		s.Apps = orderedmap.New[string, *App]()
	}
	out := orderedmap.New[string, json.RawMessage]()
	appsRaw, err := json.Marshal(s.Apps)
	if err != nil {
		return nil, err
	}
	out.Set("apps", appsRaw)
	for _, k := range sortedKeys(s.Extra) {
		if k == "apps" {
			continue
		}
		out.Set(k, s.Extra[k])
	}
	return out.MarshalJSON()
}

// UnmarshalJSON restores State from {"apps": {...}, ...}, tolerating a
// missing or null apps key as an empty document and stashing every other
// top-level key in Extra.
func (s *State) UnmarshalJSON(data []byte) error {
	var wire struct {
		Apps *orderedmap.OrderedMap[string, *App] `json:"apps"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Apps == nil {
		wire.Apps = orderedmap.New[string, *App]()
	}
	s.Apps = wire.Apps
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Extra = nil
	for k, v := range raw {
		if k == "apps" {
			continue
		}
		if s.Extra == nil {
			s.Extra = map[string]json.RawMessage{}
		}
		s.Extra[k] = v
	}
	return nil
}

// New returns an empty State document.
func New() *State {
	return &State{Apps: orderedmap.New[string, *App]()}
}

// DefaultPath resolves the canonical state file location for the current
// platform, following documented search order.
func DefaultPath() (string, error) {
	if runtime.GOOS == "windows" {
		base := os.Getenv("APPDATA")
		if base == "" {
			return "", envherr.New(envherr.IoError, "APPDATA is not set")
		}
		return filepath.Join(base, "EnvHub", "config.json"), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "envhub", "config.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", envherr.Wrap(envherr.IoError, "failed to resolve home directory", err)
	}
	return filepath.Join(home, ".config", "envhub", "config.json"), nil
}

// Load reads and validates the state document at path. A missing file is
// not an error: Load returns a fresh empty document, the same way a
// first-time user sees no apps registered yet.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s := New()
		return s, nil
	}
	if err != nil {
		return nil, envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to read %s", path), err)
	}
	s := New()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, envherr.Wrap(envherr.ParseError, fmt.Sprintf("failed to parse %s", path), err)
	}
	Validate(s)
	return s, nil
}

// Validate normalizes a freshly loaded document: alias, profile and
// environment-variable names lose surrounding whitespace, every App gets
// a profiles map even if the document omitted one, and an ActiveProfile
// that names a missing profile is cleared. Unknown fields are untouched.
// Selecting a fallback profile when ActiveProfile is empty is the
// launcher's job, not Validate's.
func Validate(s *State) {
	if s.Apps == nil {
		s.Apps = orderedmap.New[string, *App]()
	}
	s.Apps = trimKeys(s.Apps)
	for pair := s.Apps.Oldest(); pair != nil; pair = pair.Next() {
		app := pair.Value
		if app.Profiles == nil {
			app.Profiles = orderedmap.New[string, *Profile]()
		}
		app.Profiles = trimKeys(app.Profiles)
		for pp := app.Profiles.Oldest(); pp != nil; pp = pp.Next() {
			if pp.Value == nil {
				app.Profiles.Set(pp.Key, NewProfile())
				continue
			}
			if pp.Value.Env == nil {
				pp.Value.Env = orderedmap.New[string, string]()
			}
			pp.Value.Env = trimKeys(pp.Value.Env)
		}
		app.ActiveProfile = strings.TrimSpace(app.ActiveProfile)
		if app.ActiveProfile != "" {
			if _, ok := app.Profiles.Get(app.ActiveProfile); !ok {
				app.ActiveProfile = ""
			}
		}
	}
}

// trimKeys rebuilds m with surrounding whitespace stripped from every
// key, preserving insertion order. When two keys collapse to the same
// trimmed name, the later entry wins, matching last-writer semantics
// elsewhere in the document.
func trimKeys[V any](m *orderedmap.OrderedMap[string, V]) *orderedmap.OrderedMap[string, V] {
	dirty := false
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		if strings.TrimSpace(pair.Key) != pair.Key {
			dirty = true
			break
		}
	}
	if !dirty {
		return m
	}
	trimmed := orderedmap.New[string, V]()
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		trimmed.Set(strings.TrimSpace(pair.Key), pair.Value)
	}
	return trimmed
}

// Save atomically writes s to path: it writes the full JSON payload to a
// temp file in the same directory, syncs and closes it, then renames it
// over the destination. A failure before the rename leaves the existing
// file, if any, untouched.
func Save(path string, s *State) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to create %s", dir), err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return envherr.Wrap(envherr.IoError, "failed to encode state", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json.tmp")
	if err != nil {
		return envherr.Wrap(envherr.IoError, "failed to create temp file", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return envherr.Wrap(envherr.IoError, "failed to write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return envherr.Wrap(envherr.IoError, "failed to sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return envherr.Wrap(envherr.IoError, "failed to close temp file", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return envherr.Wrap(envherr.IoError, "failed to set permissions", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return envherr.Wrap(envherr.IoError, fmt.Sprintf("failed to install %s", path), err)
	}
	return nil
}
