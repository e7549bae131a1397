package launcher

import (
	"fmt"
	"os"
	"strings"

	"github.com/sontallive/envhub/internal/pathwalk"
	"github.com/sontallive/envhub/internal/state"
)

// Run drives one full invocation of the launcher and returns the process
// exit code to use. On a successful POSIX handoff, Handoff never returns,
// so Run effectively never returns either in that case — the int result
// only matters for the failure outlets and for Windows, where the
// launcher is a real parent process that must report the child's own
// exit code without translation.
func Run(args, environ []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "envhub: no argv[0]")
		return ExitIoError
	}
	alias := SelfIdentify(args[0])
	if alias == CanonicalName {
		msg, handled := DirectInvocationMessage(alias, args[1:])
		if handled {
			// --version/--help are the only two arguments the launcher
			// interprets itself, and only under its canonical name.
			fmt.Fprint(os.Stdout, msg)
			return 0
		}
		fmt.Fprint(os.Stderr, msg)
		return ExitDirectInvocation
	}

	statePath, err := state.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "envhub: %v\n", err)
		return ExitIoError
	}

	self, _ := pathwalk.CanonicalSelfPath()
	decision, failure := Resolve(statePath, args, environ, envValue(environ, "PATH"), self)
	if failure != nil {
		fmt.Fprintln(os.Stderr, failure.Message)
		return failure.Code
	}

	code, failure := Handoff(decision)
	if failure != nil {
		fmt.Fprintln(os.Stderr, failure.Message)
		return failure.Code
	}
	return code
}

func envValue(environ []string, key string) string {
	prefix := key + "="
	for i := len(environ) - 1; i >= 0; i-- {
		if strings.HasPrefix(environ[i], prefix) {
			return environ[i][len(prefix):]
		}
	}
	return ""
}
