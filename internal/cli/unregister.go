package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sontallive/envhub/internal/library"
)

func (a *App) newUnregisterCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "unregister <alias>",
		Short: "Remove an alias and its shim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.confirmDestructive(fmt.Sprintf("Really unregister %q?", args[0]), yes)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := library.UnregisterApp(a.StatePath, args[0]); err != nil {
				return err
			}
			fmt.Printf("Unregistered %q\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
