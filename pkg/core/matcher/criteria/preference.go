package criteria

import (
	"fmt"

	"github.com/jakechorley/team-matcher/pkg/core/matcher"
)

// PreferenceCriterion measures how unhappy students are with their projects.
//
// Score:
//   - Each team's score is the mean preference cost of its members
//   - The state's score is the mean of the team scores, so every team counts
//     equally regardless of size
//
// Validation:
//   - Reports students placed on a project they did not rank
type PreferenceCriterion struct {
	weight float64
	cost   matcher.CostFunc
}

// NewPreferenceCriterion creates a new PreferenceCriterion with the given weight and cost curve
func NewPreferenceCriterion(weight float64, cost matcher.CostFunc) *PreferenceCriterion {
	return &PreferenceCriterion{
		weight: weight,
		cost:   cost,
	}
}

func (c *PreferenceCriterion) Name() string {
	return "Preference"
}

func (c *PreferenceCriterion) Weight() float64 {
	return c.weight
}

func (c *PreferenceCriterion) Score(state *matcher.State) (float64, error) {
	if len(state.Active) == 0 {
		return 0, fmt.Errorf("%w: no active projects", matcher.ErrEmptyCollection)
	}

	total := 0.0
	for _, project := range state.Active {
		teamCost, err := c.TeamCost(project)
		if err != nil {
			return 0, err
		}
		total += teamCost
	}

	return total / float64(len(state.Active)), nil
}

// TeamCost returns the mean preference cost of the project's members
func (c *PreferenceCriterion) TeamCost(project *matcher.Project) (float64, error) {
	if len(project.Roster) == 0 {
		return 0, fmt.Errorf("%w: project %d has no students", matcher.ErrEmptyCollection, project.ID)
	}

	total := 0.0
	for _, student := range project.Roster {
		total += c.cost(student.RankOf(project.ID))
	}
	return total / float64(len(project.Roster)), nil
}

func (c *PreferenceCriterion) ValidateState(state *matcher.State) []matcher.ProjectValidationError {
	var errors []matcher.ProjectValidationError

	for _, project := range state.Active {
		for _, student := range project.Roster {
			if student.HasRanked(project.ID) {
				continue
			}
			errors = append(errors, matcher.ProjectValidationError{
				ProjectID:     project.ID,
				ProjectName:   project.Name,
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("%s (%d) did not rank this project", student.Name, student.ID),
			})
		}
	}

	return errors
}
