package criteria

import "github.com/jakechorley/team-matcher/pkg/core/matcher"

// Built-in energy weights
const (
	// WeightPreference scales the average preference cost across teams
	WeightPreference = 2.0

	// WeightDiversity scales the average team diversity. It is negative so
	// more diverse teams lower the energy.
	WeightDiversity = -0.5

	// WeightComposition scales the composition penalty
	WeightComposition = 1.0

	// PenaltyPerShortfall is added for every composition rule a team fails
	PenaltyPerShortfall = 1000.0
)

// Default returns the criteria making up the standard energy function:
// 2*avg_pref - 0.5*avg_diversity + penalties
func Default(cost matcher.CostFunc) []matcher.Criterion {
	return []matcher.Criterion{
		NewPreferenceCriterion(WeightPreference, cost),
		NewDiversityCriterion(WeightDiversity),
		NewCompositionCriterion(WeightComposition, PenaltyPerShortfall),
	}
}
