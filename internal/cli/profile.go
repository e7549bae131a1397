package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sontallive/envhub/internal/library"
)

func (a *App) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage an alias's environment profiles",
	}
	cmd.AddCommand(
		a.newProfileAddCmd(),
		a.newProfileListCmd(),
		a.newProfileSetActiveCmd(),
		a.newProfileRenameCmd(),
		a.newProfileDeleteCmd(),
		a.newProfileSetVarCmd(),
		a.newProfileDeleteVarCmd(),
		a.newProfileSetArgsCmd(),
	)
	return cmd
}

func (a *App) newProfileAddCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "add <alias> <profile>",
		Short: "Create a new profile, optionally cloned from an existing one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from != "" {
				if err := library.CloneProfile(a.StatePath, args[0], from, args[1]); err != nil {
					return err
				}
				fmt.Printf("Created profile %q for %q (cloned from %q)\n", args[1], args[0], from)
				return nil
			}
			if err := library.AddProfile(a.StatePath, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Created profile %q for %q\n", args[1], args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "existing profile to copy variables from")
	return cmd
}

func (a *App) newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <alias>",
		Short: "List an alias's profiles and their variables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProfileList(args[0])
		},
	}
}

func (a *App) runProfileList(alias string) error {
	app, err := library.GetApp(a.StatePath, alias)
	if err != nil {
		return err
	}
	for pair := app.Profiles.Oldest(); pair != nil; pair = pair.Next() {
		marker := " "
		if pair.Key == app.ActiveProfile {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, pair.Key)
		for env := pair.Value.Env.Oldest(); env != nil; env = env.Next() {
			fmt.Printf("    %s=%s\n", env.Key, MaskValue(env.Key, env.Value))
		}
		if len(pair.Value.CommandArgs) > 0 {
			fmt.Printf("    args: %s\n", strings.Join(pair.Value.CommandArgs, " "))
		}
	}
	return nil
}

func (a *App) newProfileSetActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-active <alias> <profile>",
		Short: "Select which profile the next invocation uses",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := library.SetActiveProfile(a.StatePath, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Active profile for %q is now %q\n", args[0], args[1])
			return nil
		},
	}
}

func (a *App) newProfileRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <alias> <from> <to>",
		Short: "Rename a profile in place",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := library.RenameProfile(a.StatePath, args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Printf("Renamed profile %q to %q\n", args[1], args[2])
			return nil
		},
	}
}

func (a *App) newProfileDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <alias> <profile>",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.confirmDestructive(fmt.Sprintf("Really delete profile %q from %q?", args[1], args[0]), yes)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := library.RemoveProfile(a.StatePath, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Deleted profile %q from %q\n", args[1], args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *App) newProfileSetVarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-var <alias> <profile> <KEY> <value>",
		Short: "Set one environment variable in a profile",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := library.SetProfileEnv(a.StatePath, args[0], args[1], args[2], args[3]); err != nil {
				return err
			}
			fmt.Printf("Set %s in %s/%s\n", args[2], args[0], args[1])
			return nil
		},
	}
}

func (a *App) newProfileDeleteVarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-var <alias> <profile> <KEY>",
		Short: "Remove one environment variable from a profile",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := library.RemoveProfileEnv(a.StatePath, args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Printf("Removed %s from %s/%s\n", args[2], args[0], args[1])
			return nil
		},
	}
}

func (a *App) newProfileSetArgsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-args <alias> <profile> [arg...]",
		Short: "Replace the arguments prepended at invocation time",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := library.SetCommandArgs(a.StatePath, args[0], args[1], args[2:]); err != nil {
				return err
			}
			fmt.Printf("Set command args for %s/%s\n", args[0], args[1])
			return nil
		},
	}
	// Flag parsing stops at the alias, so dash-prefixed arguments such as
	// --fast are stored verbatim instead of rejected as unknown flags.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
