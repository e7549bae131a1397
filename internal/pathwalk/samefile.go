package pathwalk

import "os"

// sameFile compares two resolved paths with os.SameFile, which checks
// device+inode on POSIX and the file index on Windows — catching the case
// where two distinct paths are hardlinks to one underlying file even
// though their strings differ after symlink resolution.
func sameFile(a, b string) (bool, error) {
	fa, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(fa, fb), nil
}
