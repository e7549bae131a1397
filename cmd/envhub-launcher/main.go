// Command envhub-launcher is the single executable that impersonates
// every registered alias. It is never invoked directly by a user;
// install_shim places a symlink (POSIX) or a copy (Windows) of this
// binary under each alias's own name.
package main

import (
	"os"

	"github.com/sontallive/envhub/internal/launcher"
)

func main() {
	// The invocation name lives in argv[0], which the shim preserves even
	// though the resolved executable path is this launcher binary.
	os.Exit(launcher.Run(os.Args, os.Environ()))
}
