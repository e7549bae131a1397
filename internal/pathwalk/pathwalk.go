// Package pathwalk implements cross-platform PATH enumeration and the
// same-executable detection the launcher uses to avoid re-invoking itself
// through its own shim (the anti-loop check).
package pathwalk

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ListSeparator is the OS path-list separator: ";" on Windows, ":" elsewhere.
func ListSeparator() string {
	if runtime.GOOS == "windows" {
		return ";"
	}
	return ":"
}

// Dirs splits the given PATH value into its component directories,
// dropping empty entries.
func Dirs(pathVar string) []string {
	var dirs []string
	for _, d := range strings.Split(pathVar, ListSeparator()) {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Contains reports whether dir is present verbatim among pathVar's entries.
func Contains(pathVar, dir string) bool {
	for _, d := range Dirs(pathVar) {
		if d == dir {
			return true
		}
	}
	return false
}

// execExtensions returns the PATHEXT-style suffixes a bare candidate name
// must be tried with. On POSIX, an empty suffix is the only one: execute
// permission is what matters, not the name.
func execExtensions() []string {
	if runtime.GOOS != "windows" {
		return []string{""}
	}
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		pathext = ".COM;.EXE;.BAT;.CMD"
	}
	exts := strings.Split(pathext, ";")
	return append([]string{""}, exts...)
}

// isExecutable reports whether path exists and, on POSIX, carries an
// execute bit for someone. On Windows, existence is sufficient.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0o111 != 0
}

// FindInPath walks each directory of pathVar looking for an executable
// candidate named target (trying every PATHEXT suffix on Windows). self,
// if non-empty, is the launcher's own canonical path; any hit that turns
// out to be the same executable as self is skipped so the search can
// continue past it, implementing the launcher's anti-loop PATH resolution.
// It returns "" if nothing else is found.
func FindInPath(pathVar, target, self string) string {
	exts := execExtensions()
	for _, dir := range Dirs(pathVar) {
		for _, ext := range exts {
			candidate := filepath.Join(dir, target+ext)
			if !isExecutable(candidate) {
				continue
			}
			if self != "" {
				if same, err := SameExecutable(candidate, self); err == nil && same {
					continue
				}
			}
			return candidate
		}
	}
	return ""
}

// SameExecutable reports whether a and b, after symlink resolution,
// identify the same file on disk. When the resolved paths differ it
// falls back to os.SameFile (device and inode on POSIX, file index on
// Windows), so two hardlinks to one file also count as the same
// executable.
func SameExecutable(a, b string) (bool, error) {
	ra, err := filepath.EvalSymlinks(a)
	if err != nil {
		return false, err
	}
	rb, err := filepath.EvalSymlinks(b)
	if err != nil {
		return false, err
	}
	if ra == rb {
		return true, nil
	}
	return sameFile(ra, rb)
}

// CanonicalSelfPath returns the canonical, symlink-resolved path to the
// currently running executable, used as the self-reference for
// SameExecutable/FindInPath anti-loop checks.
func CanonicalSelfPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return resolved, nil
}
