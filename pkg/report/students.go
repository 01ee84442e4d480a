package report

import (
	"fmt"
	"io"

	"github.com/jakechorley/team-matcher/pkg/core/matcher"
)

// ListUnrankedStudents writes every student placed on a project they did not
// rank, with their full ranking list. It returns how many were listed.
func ListUnrankedStudents(w io.Writer, state *matcher.State, projectNames map[int]string) int {
	title := "The following students were assigned to projects that they did not rank:"
	fmt.Fprintln(w, Heading.Render(title))
	fmt.Fprintln(w, rule(title, "-"))

	listed := 0
	for _, p := range state.Active {
		for _, s := range p.Roster {
			if s.HasRanked(p.ID) {
				continue
			}
			fmt.Fprintln(w, Warning.Render(fmt.Sprintf("%s (%s):", s.Name, s.Track)))
			writeRankings(w, s, projectNames)
			fmt.Fprintln(w)
			listed++
		}
	}

	if listed == 0 {
		fmt.Fprintln(w, Good.Render("There were no students assigned to projects that they did not rank."))
	}
	fmt.Fprintln(w)
	return listed
}

// ListLowInterestStudents writes every student whose rank of their project is
// worse than half the number of rankings. It returns how many were listed.
func ListLowInterestStudents(w io.Writer, state *matcher.State, projectNames map[int]string, rankings int) int {
	threshold := rankings / 2

	title := fmt.Sprintf("The following students were assigned to a project below rank %d:", threshold)
	fmt.Fprintln(w, Heading.Render(title))
	fmt.Fprintln(w, rule(title, "*"))

	listed := 0
	for _, p := range state.Active {
		for _, s := range p.Roster {
			rank := s.RankOf(p.ID)
			if rank <= threshold {
				continue
			}
			header := fmt.Sprintf("%s (%s):", s.Name, s.Track)
			fmt.Fprintln(w, Warning.Render(header))
			fmt.Fprintln(w, rule(header, "-"))
			fmt.Fprintf(w, "Assigned to rank %d: %s.\n", rank, projectName(projectNames, p.ID))
			fmt.Fprintln(w, "This student's rankings are:")
			writeRankings(w, s, projectNames)
			fmt.Fprintln(w)
			listed++
		}
	}

	if listed == 0 {
		fmt.Fprintln(w, Good.Render(fmt.Sprintf("Every student was assigned to one of their top %d projects.", threshold)))
	}
	fmt.Fprintln(w)
	return listed
}

func writeRankings(w io.Writer, s *matcher.Student, projectNames map[int]string) {
	for i, id := range s.ProjectRankings {
		fmt.Fprintf(w, "Rank %d: %s\n", i+1, projectName(projectNames, id))
	}
}

// projectName falls back to the ID for projects missing from the mappings
func projectName(projectNames map[int]string, id int) string {
	if name, ok := projectNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Project %d", id)
}
