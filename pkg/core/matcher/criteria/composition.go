package criteria

import (
	"fmt"

	"github.com/jakechorley/team-matcher/pkg/core/matcher"
)

// CompositionCriterion penalises teams that miss a composition rule.
//
// Score:
//   - A fixed penalty for each rule each team fails (see matcher.Project.Shortfalls)
//   - Rules are checked independently, so one team can contribute up to five penalties
//
// Validation:
//   - Reports every failed rule
//   - Reports teams below the per-track minimum
type CompositionCriterion struct {
	weight  float64
	penalty float64
}

// NewCompositionCriterion creates a new CompositionCriterion with the given weight and per-rule penalty
func NewCompositionCriterion(weight, penalty float64) *CompositionCriterion {
	return &CompositionCriterion{
		weight:  weight,
		penalty: penalty,
	}
}

func (c *CompositionCriterion) Name() string {
	return "Composition"
}

func (c *CompositionCriterion) Weight() float64 {
	return c.weight
}

func (c *CompositionCriterion) Score(state *matcher.State) (float64, error) {
	total := 0.0
	for _, project := range state.Active {
		total += float64(len(project.Shortfalls())) * c.penalty
	}
	return total, nil
}

func (c *CompositionCriterion) ValidateState(state *matcher.State) []matcher.ProjectValidationError {
	var errors []matcher.ProjectValidationError

	for _, project := range state.Active {
		for _, shortfall := range project.Shortfalls() {
			errors = append(errors, matcher.ProjectValidationError{
				ProjectID:     project.ID,
				ProjectName:   project.Name,
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("Team has %s", shortfall),
			})
		}

		if count := project.TrackCount(matcher.TrackA); count < project.Quota.MinTrackA {
			errors = append(errors, matcher.ProjectValidationError{
				ProjectID:     project.ID,
				ProjectName:   project.Name,
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("Team has %d %s students but needs %d", count, matcher.TrackA, project.Quota.MinTrackA),
			})
		}
		if count := project.TrackCount(matcher.TrackB); count < project.Quota.MinTrackB {
			errors = append(errors, matcher.ProjectValidationError{
				ProjectID:     project.ID,
				ProjectName:   project.Name,
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("Team has %d %s students but needs %d", count, matcher.TrackB, project.Quota.MinTrackB),
			})
		}
	}

	return errors
}
