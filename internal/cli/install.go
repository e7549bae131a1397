package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sontallive/envhub/internal/envherr"
	"github.com/sontallive/envhub/internal/library"
	"github.com/sontallive/envhub/internal/shell"
)

func (a *App) newInstallLauncherCmd() *cobra.Command {
	var mode, from string
	cmd := &cobra.Command{
		Use:   "install-launcher",
		Short: "Install the envhub-launcher binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInstallLauncher(mode, from)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", `install mode: "user" or "global" (default from cli.toml)`)
	cmd.Flags().StringVar(&from, "from", "", "launcher binary to install (default: the one shipped next to envhub)")
	return cmd
}

// launcherSource locates the launcher binary to install. Releases ship
// envhub and envhub-launcher side by side, so the sibling of the running
// executable is the default.
func launcherSource(from string) (string, error) {
	if from != "" {
		return from, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", envherr.Wrap(envherr.IoError, "failed to locate the current executable", err)
	}
	sibling := filepath.Join(filepath.Dir(exe), library.LauncherFileName())
	if _, err := os.Stat(sibling); err != nil {
		return "", envherr.Wrap(envherr.NotFound,
			fmt.Sprintf("no launcher binary next to %s; pass --from", exe), err)
	}
	return sibling, nil
}

func (a *App) runInstallLauncher(mode, from string) error {
	src, err := launcherSource(from)
	if err != nil {
		return err
	}
	info, err := library.InstallLauncher(src, a.installMode(mode))
	if err != nil {
		return err
	}
	fmt.Printf("Installed launcher at %s\n", info.LauncherPath)
	if info.RequiresNewShell {
		fmt.Println("PATH was updated; open a new shell for the change to take effect.")
	}
	if !info.OnPath && info.PathHintSnippet != "" {
		fmt.Printf("%s is not on PATH. Add it with:\n\n  %s", info.InstallDir, info.PathHintSnippet)
		if rc := shell.RCPath(info.PathHintShell); rc != "" {
			fmt.Printf("\n(typically in %s)\n", rc)
		}
	}
	return nil
}

func (a *App) newInstallShimCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "install-shim <alias>",
		Short: "(Re)install the shim file for a registered alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInstallShim(args[0], dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "install directory (default: the alias's recorded one)")
	return cmd
}

func (a *App) runInstallShim(alias, dir string) error {
	launcherPath, err := a.launcher()
	if err != nil {
		return err
	}
	if dir == "" {
		app, err := library.GetApp(a.StatePath, alias)
		if err != nil {
			return err
		}
		dir = app.InstallPath
	}
	if dir == "" {
		if dir, err = library.DefaultInstallDir(a.installMode("")); err != nil {
			return err
		}
	}
	if pc := library.ShimPreflight(dir, alias); pc.ShadowsExisting {
		fmt.Printf("note: %q already resolves to %s; the shim will shadow it\n", alias, pc.ShadowedPath)
	}
	err = library.InstallShim(a.StatePath, alias, launcherPath, dir)
	if envherr.Is(err, envherr.PathNotOnPath) {
		// The shim did land; tell the user how to make their shell see it.
		fmt.Printf("Installed shim for %q under %s\n", alias, dir)
		sh := shell.Detect()
		fmt.Printf("%s is not on PATH. Add it with:\n\n  %s", dir, shell.PathHint(sh, dir))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Installed shim for %q under %s\n", alias, dir)
	return nil
}
