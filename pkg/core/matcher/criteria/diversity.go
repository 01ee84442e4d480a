package criteria

import (
	"fmt"

	"github.com/jakechorley/team-matcher/pkg/core/matcher"
)

// DiversityCriterion rewards teams whose attributes are spread out.
// The score is the mean team diversity under the state's model; give it a
// negative weight to turn it into a reward.
type DiversityCriterion struct {
	weight float64
}

// NewDiversityCriterion creates a new DiversityCriterion with the given weight
func NewDiversityCriterion(weight float64) *DiversityCriterion {
	return &DiversityCriterion{weight: weight}
}

func (c *DiversityCriterion) Name() string {
	return "Diversity"
}

func (c *DiversityCriterion) Weight() float64 {
	return c.weight
}

func (c *DiversityCriterion) Score(state *matcher.State) (float64, error) {
	if len(state.Active) == 0 {
		return 0, fmt.Errorf("%w: no active projects", matcher.ErrEmptyCollection)
	}
	if state.Model == nil {
		return 0, fmt.Errorf("state has no diversity model")
	}

	total := 0.0
	for _, project := range state.Active {
		d, err := project.CalculateDiversity(state.Model)
		if err != nil {
			return 0, err
		}
		total += d
	}

	return total / float64(len(state.Active)), nil
}

func (c *DiversityCriterion) ValidateState(state *matcher.State) []matcher.ProjectValidationError {
	return nil
}
