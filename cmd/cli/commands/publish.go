package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/team-matcher/pkg/core/services"
	"github.com/jakechorley/team-matcher/pkg/report"
)

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish [runID]",
		Short: "Publish a run's teams to Google Sheets",
		Long:  "Publish a saved run's teams to the teams sheet. If no runID is provided, publishes the latest run.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) > 0 {
				runID = args[0]
			}

			app.Logger.Debug("publish command", zap.String("run_id", runID))

			database, err := app.RequireDatabase()
			if err != nil {
				return err
			}

			sheetsClient, err := app.SheetsClient()
			if err != nil {
				return err
			}

			published, err := services.PublishTeams(
				app.Ctx,
				database,
				sheetsClient,
				app.Cfg,
				app.Logger,
				runID,
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out)
			fmt.Fprintln(out, report.Good.Render("Teams published successfully"))
			fmt.Fprintf(out, "Run ID:   %s\n", published.RunID)
			fmt.Fprintf(out, "Sheet ID: %s\n\n", app.Cfg.TeamsSheetID)

			fmt.Fprintf(out, "%-40s  %-6s  %s\n", "Project", "Avg", "Members")
			fmt.Fprintf(out, "%s  %s  %s\n", strings.Repeat("-", 40), strings.Repeat("-", 6), strings.Repeat("-", 30))
			for _, team := range published.Teams {
				fmt.Fprintf(out, "%-40s  %6.2f  %s\n", team.Project, team.AverageRank, strings.Join(team.Members, ", "))
			}
			fmt.Fprintln(out)

			return nil
		},
	}

	return cmd
}
