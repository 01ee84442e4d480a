package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jakechorley/team-matcher/pkg/core/matcher"
)

// SolutionOptions controls what PrintFinalSolution shows for each student
type SolutionOptions struct {
	// ShowDiversity prints attribute vectors and team diversity alongside ranks
	ShowDiversity bool
}

// PrintFinalSolution writes every team with its members, their rank of the
// project and the team's average rank, followed by the overall average
func PrintFinalSolution(w io.Writer, state *matcher.State, opts SolutionOptions) error {
	title := "Final Solution"
	fmt.Fprintln(w, Heading.Render(title))
	fmt.Fprintln(w, rule(title, "="))

	var averages []float64
	for _, p := range state.Active {
		header := fmt.Sprintf("%s: %v", p.Name, p.StudentIDs())
		fmt.Fprintln(w, Project.Render(header))
		fmt.Fprintln(w, rule(header, "-"))

		ranks := 0
		for _, s := range p.Roster {
			rank := s.RankOf(p.ID)
			ranks += rank

			line := fmt.Sprintf("%s (%s): Rank: %d", s.Name, s.Track, rank)
			if rank >= s.Unranked() {
				line = Warning.Render(fmt.Sprintf("%s (%s): Rank: unranked", s.Name, s.Track))
			}
			fmt.Fprintln(w, line)
			if opts.ShowDiversity {
				fmt.Fprintln(w, Muted.Render(fmt.Sprintf("  Attributes: %v", s.NumericProperties())))
			}
		}

		if len(p.Roster) == 0 {
			fmt.Fprintln(w, Warning.Render("No students"))
			fmt.Fprintln(w)
			continue
		}

		avg := float64(ranks) / float64(len(p.Roster))
		averages = append(averages, avg)
		fmt.Fprintf(w, "Average project rank: %.2f\n", avg)

		if opts.ShowDiversity && state.Model != nil {
			diversity, err := p.CalculateDiversity(state.Model)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Diversity: %.4f\n", diversity)
		}
		fmt.Fprintln(w)
	}

	if len(averages) > 0 {
		total := 0.0
		for _, avg := range averages {
			total += avg
		}
		fmt.Fprintln(w, Good.Render(fmt.Sprintf("This solution had a %.2f rank on average.", total/float64(len(averages)))))
	}
	fmt.Fprintln(w)

	return nil
}

// PrintEnergy writes the energy split by criterion and any issues with the final teams
func PrintEnergy(w io.Writer, breakdown *matcher.EnergyBreakdown, issues []matcher.ProjectValidationError) {
	title := "Energy"
	fmt.Fprintln(w, Heading.Render(title))
	fmt.Fprintln(w, rule(title, "="))

	for _, term := range breakdown.Terms {
		fmt.Fprintf(w, "%-12s %10.4f x %6.2f = %10.4f\n", term.Criterion, term.Score, term.Weight, term.Weighted)
	}
	fmt.Fprintf(w, "%-12s %34.4f\n", "Total", breakdown.Total)
	fmt.Fprintln(w)

	if len(issues) == 0 {
		fmt.Fprintln(w, Good.Render("Every team meets all criteria."))
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintln(w, Warning.Render(fmt.Sprintf("%d issue(s) with the final teams:", len(issues))))
	for _, issue := range issues {
		fmt.Fprintf(w, "  %s [%s]: %s\n", issue.ProjectName, issue.CriterionName, issue.Description)
	}
	fmt.Fprintln(w)
}

// WriteTeams writes one CSV record per team: the project name followed by its
// members' names, tab separated
func WriteTeams(w io.Writer, state *matcher.State) error {
	writer := csv.NewWriter(w)
	for _, p := range state.Active {
		fields := []string{p.Name}
		for _, s := range p.Roster {
			fields = append(fields, s.Name)
		}
		if err := writer.Write([]string{strings.Join(fields, "\t")}); err != nil {
			return fmt.Errorf("failed to write team %d: %w", p.ID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write teams: %w", err)
	}
	return nil
}

// WriteTeamsCSV writes the teams to the output file, replacing it if it exists
func WriteTeamsCSV(path string, state *matcher.State) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := WriteTeams(file, state); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
