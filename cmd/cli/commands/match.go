package commands

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/team-matcher/pkg/core/services"
	"github.com/jakechorley/team-matcher/pkg/report"
)

// MatchCmd creates the match command
func MatchCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match students to project teams",
		Long: `Load the student survey and project mappings, build teams by simulated annealing
and write them to the configured output file.

Press Ctrl+C to stop early; the best teams found so far are kept.
The run is saved to the database unless --dry-run is set or no databaseURL is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			opts := services.MatchOptions{DryRun: dryRun}
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetInt64("seed")
				opts.Seed = &seed
			}

			app.Logger.Debug("match command", zap.Bool("dry_run", dryRun), zap.Any("seed", opts.Seed))

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt)
			defer stop()

			// Reload the same files in an interactive session
			app.Loader.Forget()

			result, err := services.MatchTeams(ctx, app.Database, app.Loader, app.Cfg, app.Logger, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out)
			if err := report.PrintFinalSolution(out, result.State, report.SolutionOptions{ShowDiversity: app.Cfg.DiversityEnabled()}); err != nil {
				return err
			}
			report.PrintEnergy(out, result.Breakdown, result.Issues)
			report.ListUnrankedStudents(out, result.State, result.Input.ProjectNames)
			report.ListLowInterestStudents(out, result.State, result.Input.ProjectNames, result.Input.Rankings)

			if err := report.WriteTeamsCSV(app.Cfg.Files.Output, result.State); err != nil {
				return err
			}

			if result.Outcome.Interrupted {
				fmt.Fprintln(out, report.Warning.Render(fmt.Sprintf("Stopped after %d steps; these are the best teams found.", result.Outcome.Steps)))
			}
			fmt.Fprintf(out, "Completed annealing and wrote results to %s\n", app.Cfg.Files.Output)
			fmt.Fprintf(out, "Seed:   %d\n", result.Run.Seed)
			fmt.Fprintf(out, "Energy: %.4f (started at %.4f)\n", result.Outcome.Energy, result.Outcome.InitialEnergy)
			if result.Saved {
				fmt.Fprintf(out, "Run ID: %s\n", result.Run.ID)
			}
			fmt.Fprintln(out)

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving to the database")
	cmd.Flags().Int64("seed", 0, "Seed for random decisions (overrides annealing.seed)")

	return cmd
}
