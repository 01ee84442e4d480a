package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/team-matcher/pkg/core/matcher"
)

func TestDefault_EnergyFormula(t *testing.T) {
	state := balancedState(t)
	// Remove the only strong coder from project 2 so one penalty applies
	state.Active[1].Roster[1].CodingAbility = 0

	energy, err := matcher.Energy(state, Default(LinearCost()))
	require.NoError(t, err)

	pref, err := NewPreferenceCriterion(1, LinearCost()).Score(state)
	require.NoError(t, err)
	div, err := NewDiversityCriterion(1).Score(state)
	require.NoError(t, err)

	assert.InDelta(t, 2*pref-0.5*div+1000, energy, 1e-9)
}

func TestDefault_Deterministic(t *testing.T) {
	state := balancedState(t)
	criteria := Default(QuadraticCost())

	first, err := matcher.Evaluate(state, criteria)
	require.NoError(t, err)
	second, err := matcher.Evaluate(state, criteria)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first.Terms, 3)
	assert.Equal(t, []string{"Preference", "Diversity", "Composition"},
		[]string{first.Terms[0].Criterion, first.Terms[1].Criterion, first.Terms[2].Criterion})
}
