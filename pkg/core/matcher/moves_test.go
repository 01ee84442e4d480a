package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwapStudents_ExchangesMembership(t *testing.T) {
	state := threeTeamState(t)
	first, second := state.Active[0], state.Active[1]
	s1, s2 := first.Roster[0], second.Roster[1]

	err := SwapStudents(first, second, s1, s2)
	require.NoError(t, err)

	assert.True(t, first.Contains(s2))
	assert.False(t, first.Contains(s1))
	assert.True(t, second.Contains(s1))
	assert.False(t, second.Contains(s2))
	assert.Equal(t, 2, first.Size())
	assert.Equal(t, 2, second.Size())
}

func TestSwapStudents_StudentMissing(t *testing.T) {
	state := threeTeamState(t)
	first, second := state.Active[0], state.Active[1]
	before := rosterSets(state)

	// Student 5 is on project 3, not project 2
	stray := state.Active[2].Roster[0]

	err := SwapStudents(first, second, first.Roster[0], stray)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.Contains(t, err.Error(), "is not in project 2")

	// Nothing changed
	assert.Equal(t, before, rosterSets(state))
}

func TestSwapStudents_SameProject(t *testing.T) {
	state := threeTeamState(t)
	p := state.Active[0]

	err := SwapStudents(p, p, p.Roster[0], p.Roster[1])
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestStudentSwap_UndoRestoresRosters(t *testing.T) {
	state := threeTeamState(t)
	before := rosterSets(state)

	move := &StudentSwap{
		First:      state.Active[0],
		Second:     state.Active[2],
		FromFirst:  state.Active[0].Roster[1],
		FromSecond: state.Active[2].Roster[0],
	}
	require.NoError(t, SwapStudents(move.First, move.Second, move.FromFirst, move.FromSecond))
	assert.NotEqual(t, before, rosterSets(state))

	require.NoError(t, move.Undo(state))

	after := rosterSets(state)
	for id, members := range before {
		assert.ElementsMatch(t, members, after[id], "project %d roster should be restored", id)
	}
	assert.Equal(t, MoveStudentSwap, move.Kind())
	assert.Contains(t, move.String(), "swap student 2")
}

func TestExchangeProjects_TransplantsRoster(t *testing.T) {
	state := threeTeamState(t)
	outgoing := state.Active[1]
	incoming := state.Feasible[1] // project 5
	teamSize := outgoing.Size()
	population := state.Population()

	move, err := ExchangeProjects(state, outgoing, incoming)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3, 5}, activeIDs(state))
	assert.Equal(t, []int{4, 6, 7, 2}, feasibleIDs(state))
	assert.Empty(t, outgoing.Roster)
	assert.Equal(t, teamSize, incoming.Size())
	assert.Equal(t, population, state.Population())
	assert.Equal(t, 1, move.ActiveIndex)
	assert.Equal(t, 1, move.FeasibleIndex)
	require.NoError(t, state.Validate())
}

func TestExchangeProjects_RejectsActiveIncoming(t *testing.T) {
	state := threeTeamState(t)

	_, err := ExchangeProjects(state, state.Active[0], state.Active[1])
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestExchangeProjects_RejectsUnknownOutgoing(t *testing.T) {
	state := threeTeamState(t)

	_, err := ExchangeProjects(state, state.Feasible[0], state.Feasible[1])
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestProjectExchange_UndoRestoresPartitionAndOrder(t *testing.T) {
	state := threeTeamState(t)
	before := rosterSets(state)
	beforeActive := activeIDs(state)
	beforeFeasible := feasibleIDs(state)

	move, err := ExchangeProjects(state, state.Active[0], state.Feasible[2])
	require.NoError(t, err)
	assert.Equal(t, MoveProjectExchange, move.Kind())
	assert.Contains(t, move.String(), "exchange project 1 for project 6")

	require.NoError(t, move.Undo(state))

	assert.Equal(t, beforeActive, activeIDs(state))
	assert.Equal(t, beforeFeasible, feasibleIDs(state))
	after := rosterSets(state)
	for id, members := range before {
		assert.ElementsMatch(t, members, after[id])
	}
	for _, p := range state.Feasible {
		assert.Empty(t, p.Roster)
	}
	require.NoError(t, state.Validate())
}

func TestProjectExchange_StringAfterUndo(t *testing.T) {
	state := threeTeamState(t)

	move, err := ExchangeProjects(state, state.Active[0], state.Feasible[0])
	require.NoError(t, err)
	applied := move.String()
	assert.Contains(t, applied, "(2 students)")

	require.NoError(t, move.Undo(state))

	assert.Equal(t, applied, move.String())
}

func TestProjectExchange_UndoAfterStateChanged(t *testing.T) {
	state := threeTeamState(t)

	move, err := ExchangeProjects(state, state.Active[0], state.Feasible[0])
	require.NoError(t, err)
	require.NoError(t, move.Undo(state))

	// Undoing twice finds the incoming project no longer active
	err = move.Undo(state)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}
