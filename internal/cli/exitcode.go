package cli

import "github.com/sontallive/envhub/internal/envherr"

// ExitCode is the process exit code the admin CLI returns for a given
// error, mirroring envherr's closed taxonomy one-to-one.
type ExitCode int

const (
	ExitSuccess       ExitCode = 0
	ExitGeneral       ExitCode = 1
	ExitNotFound      ExitCode = 2
	ExitAlreadyExists ExitCode = 3
	ExitPermission    ExitCode = 4
	ExitPathNotOnPath ExitCode = 5
	ExitIO            ExitCode = 6
	ExitParse         ExitCode = 7
)

// MapExitCode derives the exit code for err, falling back to ExitGeneral
// for anything that isn't one of envherr's codes.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch envherr.CodeOf(err) {
	case envherr.NotFound:
		return ExitNotFound
	case envherr.AlreadyExists:
		return ExitAlreadyExists
	case envherr.Permission:
		return ExitPermission
	case envherr.PathNotOnPath:
		return ExitPathNotOnPath
	case envherr.IoError:
		return ExitIO
	case envherr.ParseError:
		return ExitParse
	default:
		return ExitGeneral
	}
}
