package cli

import (
	"github.com/spf13/cobra"

	"github.com/sontallive/envhub/internal/setup"
)

func (a *App) newWizardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Guided alias registration and editing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			launcherPath, err := a.launcher()
			if err != nil {
				return err
			}
			r := &setup.Runner{
				StatePath:    a.StatePath,
				LauncherPath: launcherPath,
				FormRunner:   &setup.HuhFormRunner{},
			}
			return r.Run()
		},
	}
}
