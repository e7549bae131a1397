//go:build windows

package launcher

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// Handoff spawns the target as a child process. Windows has no
// process-image-replacement primitive available to a normal user-mode
// process, so the launcher instead inherits all three
// standard handles and the constructed environment block, installs a
// console-control handler that forwards Ctrl+C/break to the child, waits,
// and exits with the child's exit code without translating it.
func Handoff(d *Decision) (exitCode int, err *Failure) {
	cmd := exec.Command(d.Argv[0], d.Argv[1:]...)
	cmd.Env = d.Env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if startErr := cmd.Start(); startErr != nil {
		return 0, fail(ExitHandoffFailed, "envhub: failed to start %s: %v", d.TargetPath, startErr)
	}

	// Let the child, which inherits our console, see the Ctrl+C/break
	// signal directly; returning TRUE here only stops *this* process from
	// also acting on it (e.g. terminating before the child exits).
	handler := syscall.NewCallback(func(ctrlType uint32) uintptr { return 1 })
	_ = windows.SetConsoleCtrlHandler(handler, true)
	defer windows.SetConsoleCtrlHandler(handler, false)

	waitErr := cmd.Wait()
	if waitErr == nil {
		return cmd.ProcessState.ExitCode(), nil
	}
	if exitErr, ok := waitErr.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return 0, fail(ExitHandoffFailed, "envhub: failed waiting for %s: %v", d.TargetPath, waitErr)
}
