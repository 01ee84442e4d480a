package matcher

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/team-matcher/pkg/core/diversity"
)

func newStudent(id int, track Track, coding, business, work int, rankings ...int) *Student {
	return &Student{
		ID:              id,
		Name:            "Student " + string(rune('A'+id%26)),
		Track:           track,
		CodingAbility:   coding,
		BusinessAbility: business,
		WorkExperience:  work,
		ProjectRankings: rankings,
	}
}

func newProject(id int, students ...*Student) *Project {
	return &Project{
		ID:     id,
		Name:   "Project",
		Quota:  Quota{MinTrackA: 1, MinTrackB: 1},
		Roster: students,
	}
}

// newTestState builds a state whose diversity model is fitted to the students
// on the active rosters
func newTestState(t *testing.T, active []*Project, feasible []*Project) *State {
	t.Helper()

	var vectors [][]float64
	for _, p := range active {
		for _, s := range p.Roster {
			vectors = append(vectors, s.NumericProperties())
		}
	}
	model, err := diversity.NewModel(vectors)
	require.NoError(t, err)

	state, err := NewState(active, model, feasible)
	require.NoError(t, err)
	return state
}

// threeTeamState has three active projects of two students and a pool of
// four projects with varying support from the teams
func threeTeamState(t *testing.T) *State {
	t.Helper()

	active := []*Project{
		newProject(1,
			newStudent(1, TrackA, 1, 4, 3, 1, 4, 5),
			newStudent(2, TrackB, 4, 0, 1, 1, 5, 6),
		),
		newProject(2,
			newStudent(3, TrackA, 0, 3, 4, 2, 5, 7),
			newStudent(4, TrackB, 3, 1, 0, 2, 1, 5),
		),
		newProject(3,
			newStudent(5, TrackA, 2, 2, 2, 3, 6, 1),
			newStudent(6, TrackB, 4, 1, 2, 3, 4, 2),
		),
	}
	feasible := []*Project{
		newProject(4),
		newProject(5),
		newProject(6),
		newProject(7),
	}
	return newTestState(t, active, feasible)
}

func rosterSets(state *State) map[int][]int {
	return rosterIDs(state)
}

func activeIDs(state *State) []int {
	ids := make([]int, len(state.Active))
	for i, p := range state.Active {
		ids[i] = p.ID
	}
	return ids
}

func feasibleIDs(state *State) []int {
	ids := make([]int, len(state.Feasible))
	for i, p := range state.Feasible {
		ids[i] = p.ID
	}
	return ids
}

func newTestGenerator(t *testing.T, seed int64, exchangeProbability float64) *MoveGenerator {
	t.Helper()
	g, err := NewMoveGenerator(rand.New(rand.NewSource(seed)), exchangeProbability)
	require.NoError(t, err)
	return g
}
