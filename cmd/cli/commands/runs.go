package commands

import (
	"github.com/spf13/cobra"

	"github.com/jakechorley/team-matcher/pkg/core/services"
	"github.com/jakechorley/team-matcher/pkg/report"
)

// RunsCmd creates the runs command
func RunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List saved match runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("runs command")

			database, err := app.RequireDatabase()
			if err != nil {
				return err
			}

			runs, err := services.ListRuns(app.Ctx, database, app.Logger)
			if err != nil {
				return err
			}

			return report.PrintRuns(cmd.OutOrStdout(), runs)
		},
	}
}
