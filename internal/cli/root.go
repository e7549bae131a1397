package cli

import (
	"github.com/spf13/cobra"

	"github.com/sontallive/envhub/internal/clicfg"
	"github.com/sontallive/envhub/internal/setup"
)

var (
	statePathFlag    string
	launcherPathFlag string
)

// NewRootCmd builds the envhub administrative command tree.
func NewRootCmd() *cobra.Command {
	a := &App{}

	cmd := &cobra.Command{
		Use:          "envhub",
		Short:        "Register aliases and manage their environment profiles",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&statePathFlag, "state", "", "override the state file path (mainly for tests)")
	cmd.PersistentFlags().StringVar(&launcherPathFlag, "launcher", "", "override the installed launcher binary path")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path, err := resolveStatePath(statePathFlag)
		if err != nil {
			return err
		}
		a.StatePath = path
		a.LauncherPath = launcherPathFlag
		if a.Forms == nil {
			a.Forms = &setup.HuhFormRunner{}
		}

		a.Config = clicfg.Default()
		if cfgPath, err := clicfg.DefaultPath(); err == nil {
			if cfg, err := clicfg.Load(cfgPath); err == nil {
				a.Config = cfg
			}
		}
		return nil
	}

	cmd.AddCommand(
		a.newRegisterCmd(),
		a.newUnregisterCmd(),
		a.newProfileCmd(),
		a.newInstallLauncherCmd(),
		a.newInstallShimCmd(),
		a.newListCmd(),
		a.newDoctorCmd(),
		a.newWizardCmd(),
		newVersionCmd(),
	)
	return cmd
}
