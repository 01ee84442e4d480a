package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jakechorley/team-matcher/pkg/core/services"
	"github.com/jakechorley/team-matcher/pkg/db"
)

// histogramBarLimit caps the width of a histogram bar
const histogramBarLimit = 40

// PrintDemand writes per-project demand by track and a histogram of how many
// projects received each number of votes
func PrintDemand(w io.Writer, result *services.DemandResult) error {
	title := "Project demand"
	fmt.Fprintln(w, Heading.Render(title))
	fmt.Fprintln(w, rule(title, "="))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tProject\tMBA\tMEng\tTotal\tFeasible")
	for _, d := range result.Projects {
		feasible := "no"
		if d.Feasible {
			feasible = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\n", d.ProjectID, d.Name, d.TrackA, d.TrackB, d.Total(), feasible)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write demand table: %w", err)
	}
	fmt.Fprintln(w)

	title = "Votes per project"
	fmt.Fprintln(w, Heading.Render(title))
	fmt.Fprintln(w, rule(title, "="))
	for _, bucket := range result.Histogram {
		bar := strings.Repeat("#", min(bucket.Projects, histogramBarLimit))
		fmt.Fprintf(w, "%3d votes | %s %d\n", bucket.Votes, bar, bucket.Projects)
	}
	fmt.Fprintln(w)

	summary := fmt.Sprintf("%d students can fill %d teams; %d of %d projects are feasible.",
		len(result.Input.Students), result.Teams, len(result.Input.Feasible), len(result.Input.Projects))
	if result.Teams > len(result.Input.Feasible) || result.Teams == 0 {
		fmt.Fprintln(w, Warning.Render(summary))
	} else {
		fmt.Fprintln(w, Good.Render(summary))
	}
	fmt.Fprintln(w)

	return nil
}

// PrintRuns writes saved runs as a table, newest first as given
func PrintRuns(w io.Writer, runs []db.MatchRun) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, Muted.Render("No match runs found."))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCreated\tStudents\tTeams\tSteps\tEnergy\tSeed\tNote")
	for _, run := range runs {
		note := ""
		if run.Interrupted {
			note = "interrupted"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.4f\t%d\t%s\n",
			run.ID,
			run.CreatedAt.Local().Format(time.DateTime),
			run.StudentCount,
			run.TeamCount,
			run.Steps,
			run.Energy,
			run.Seed,
			note)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write runs table: %w", err)
	}
	return nil
}
