package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sontallive/envhub/internal/doctor"
	"github.com/sontallive/envhub/internal/library"
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [alias]",
		Short: "Diagnose an alias's shim, target, and PATH configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aliases := args
			if len(aliases) == 0 {
				all, err := library.ListApps(a.StatePath)
				if err != nil {
					return err
				}
				aliases = all
			}
			if len(aliases) == 0 {
				fmt.Println("No aliases registered; nothing to diagnose.")
				return nil
			}
			launcherPath, err := a.launcher()
			if err != nil {
				// The doctor still works without an installed launcher;
				// shim currency checks just report stale.
				launcherPath = ""
			}
			for _, alias := range aliases {
				report, err := library.DoctorApp(a.StatePath, alias, launcherPath)
				if err != nil {
					return err
				}
				fmt.Printf("\n--- %s ---\n", report.Alias)
				printDoctorReport(report)
			}
			return nil
		},
	}
}

func printDoctorReport(r doctor.Report) {
	for _, res := range r.Results {
		fmt.Printf("  [%s] %s: %s\n", statusIcon(res.Status), res.Name, res.Message)
		if res.Fix != "" {
			fmt.Printf("      Fix: %s\n", res.Fix)
		}
	}
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return "OK"
	case doctor.StatusWarn:
		return "!!"
	default:
		return "XX"
	}
}
