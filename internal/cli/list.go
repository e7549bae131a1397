package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sontallive/envhub/internal/library"
)

func (a *App) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [alias]",
		Short: "List registered aliases, or one alias's profiles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return a.runProfileList(args[0])
			}
			return a.runList()
		},
	}
}

func (a *App) runList() error {
	aliases, err := library.ListApps(a.StatePath)
	if err != nil {
		return err
	}
	if len(aliases) == 0 {
		fmt.Println("No aliases registered. Run 'envhub register <alias> <target>' or 'envhub wizard'.")
		return nil
	}
	for _, alias := range aliases {
		app, err := library.GetApp(a.StatePath, alias)
		if err != nil {
			return err
		}
		active := app.ActiveProfile
		if active == "" {
			active = "(none)"
		}
		installed := ""
		if !app.Installed {
			installed = "  [shim missing]"
		}
		fmt.Printf("%s -> %s  (active: %s)%s\n", alias, app.TargetBinary, active, installed)
	}
	return nil
}
