// Command envhub is the thin administrative front end over
// internal/library: register aliases, manage profiles, and install the
// launcher and its shims.
package main

import (
	"os"

	"github.com/sontallive/envhub/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(int(cli.MapExitCode(err)))
	}
}
