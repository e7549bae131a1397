//go:build !windows

package launcher

import "syscall"

// Handoff replaces the current process image with the target: PID,
// controlling terminal, stdio, process group, and signal
// delivery pass through naturally, because this is the same process, not
// a child. Handoff never returns on success; the exit code it returns on
// failure is always 0 and meaningless — callers should check err.Code.
func Handoff(d *Decision) (exitCode int, err *Failure) {
	if execErr := syscall.Exec(d.TargetPath, d.Argv, d.Env); execErr != nil {
		return 0, fail(ExitHandoffFailed, "envhub: failed to execute %s: %v", d.TargetPath, execErr)
	}
	// unreachable on success
	return 0, nil
}
