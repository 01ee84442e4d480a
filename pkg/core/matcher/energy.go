package matcher

import "fmt"

// EnergyTerm is the contribution of one criterion to the energy
type EnergyTerm struct {
	Criterion string
	Score     float64
	Weight    float64
	Weighted  float64
}

// EnergyBreakdown is the energy of a state split by criterion
type EnergyBreakdown struct {
	Terms []EnergyTerm
	Total float64
}

// Energy returns the weighted sum of criterion scores for the state.
// Lower is better. The state is only read.
func Energy(state *State, criteria []Criterion) (float64, error) {
	breakdown, err := Evaluate(state, criteria)
	if err != nil {
		return 0, err
	}
	return breakdown.Total, nil
}

// Evaluate computes the energy of the state along with each criterion's share
func Evaluate(state *State, criteria []Criterion) (*EnergyBreakdown, error) {
	if err := checkRosters(state); err != nil {
		return nil, err
	}

	breakdown := &EnergyBreakdown{
		Terms: make([]EnergyTerm, 0, len(criteria)),
	}

	for _, criterion := range criteria {
		score, err := criterion.Score(state)
		if err != nil {
			return nil, fmt.Errorf("criterion %s failed: %w", criterion.Name(), err)
		}

		weighted := score * criterion.Weight()
		breakdown.Terms = append(breakdown.Terms, EnergyTerm{
			Criterion: criterion.Name(),
			Score:     score,
			Weight:    criterion.Weight(),
			Weighted:  weighted,
		})
		breakdown.Total += weighted
	}

	return breakdown, nil
}

// checkRosters rejects states the energy is undefined for
func checkRosters(state *State) error {
	if len(state.Active) == 0 {
		return fmt.Errorf("%w: no active projects", ErrEmptyCollection)
	}
	for _, p := range state.Active {
		if len(p.Roster) == 0 {
			return fmt.Errorf("%w: active project %d has no students", ErrEmptyCollection, p.ID)
		}
	}
	return nil
}
