package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sontallive/envhub/internal/library"
)

func (a *App) newRegisterCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "register <alias> <target-binary>",
		Short: "Register a new alias and install its shim",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRegister(args[0], args[1], mode)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", `install mode: "user" or "global" (default from cli.toml)`)
	return cmd
}

// installMode maps the --mode flag (or, when empty, the configured
// default) onto a library.Mode.
func (a *App) installMode(flag string) library.Mode {
	mode := flag
	if mode == "" {
		mode = a.Config.DefaultInstallMode
	}
	if mode == "global" {
		return library.ModeGlobal
	}
	return library.ModeUser
}

func (a *App) runRegister(alias, target, mode string) error {
	launcherPath, err := a.launcher()
	if err != nil {
		return err
	}
	dir, err := library.DefaultInstallDir(a.installMode(mode))
	if err != nil {
		return err
	}
	if pc := library.ShimPreflight(dir, alias); pc.ShadowsExisting {
		fmt.Printf("note: %q already resolves to %s; the new shim will shadow it\n", alias, pc.ShadowedPath)
	}
	if err := library.RegisterApp(a.StatePath, alias, target, launcherPath, dir); err != nil {
		return err
	}
	fmt.Printf("Registered %q -> %s (shim installed under %s)\n", alias, target, dir)
	return nil
}
