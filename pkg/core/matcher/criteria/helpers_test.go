package criteria

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/team-matcher/pkg/core/diversity"
	"github.com/jakechorley/team-matcher/pkg/core/matcher"
)

func newStudent(id int, track matcher.Track, coding, business, work int, rankings ...int) *matcher.Student {
	return &matcher.Student{
		ID:              id,
		Name:            "Student",
		Track:           track,
		CodingAbility:   coding,
		BusinessAbility: business,
		WorkExperience:  work,
		ProjectRankings: rankings,
	}
}

func newProject(id int, students ...*matcher.Student) *matcher.Project {
	return &matcher.Project{
		ID:     id,
		Name:   "Project",
		Quota:  matcher.Quota{MinTrackA: 1, MinTrackB: 1},
		Roster: students,
	}
}

func newState(t *testing.T, active ...*matcher.Project) *matcher.State {
	t.Helper()

	var vectors [][]float64
	for _, p := range active {
		for _, s := range p.Roster {
			vectors = append(vectors, s.NumericProperties())
		}
	}
	model, err := diversity.NewModel(vectors)
	require.NoError(t, err)

	state, err := matcher.NewState(active, model, nil)
	require.NoError(t, err)
	return state
}

// balancedState has two teams that meet every composition rule, with every
// student on their first choice
func balancedState(t *testing.T) *matcher.State {
	t.Helper()
	return newState(t,
		newProject(1,
			newStudent(1, matcher.TrackA, 1, 4, 3, 1, 2),
			newStudent(2, matcher.TrackB, 4, 0, 1, 1, 2),
		),
		newProject(2,
			newStudent(3, matcher.TrackA, 0, 3, 4, 2, 1),
			newStudent(4, matcher.TrackB, 3, 1, 0, 2, 1),
		),
	)
}
