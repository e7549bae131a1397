//go:build windows

package library

import (
	"strings"

	"golang.org/x/sys/windows/registry"
)

// appendUserPath adds dir to HKCU\Environment\Path if it is not already
// present there, and reports whether it made a change. It does not
// broadcast WM_SETTINGCHANGE to notify other running processes of the
// update — that requires a window handle this package never has, so
// already-open shells and the current process's own PATH are unaffected
// until the next login or explicit refresh.
func appendUserPath(dir string) (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, `Environment`, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return false, err
	}
	defer key.Close()

	existing, _, err := key.GetStringValue("Path")
	if err != nil && err != registry.ErrNotExist {
		return false, err
	}

	for _, entry := range strings.Split(existing, ";") {
		if strings.EqualFold(strings.TrimRight(entry, `\`), strings.TrimRight(dir, `\`)) {
			return false, nil
		}
	}

	updated := dir
	if existing != "" {
		updated = existing + ";" + dir
	}
	if err := key.SetStringValue("Path", updated); err != nil {
		return false, err
	}
	return true, nil
}
