package matcher

// ValidateState validates the final state against all provided criteria.
// Returns a slice of validation errors for any unsatisfactory team.
// An empty slice indicates every team is acceptable.
func ValidateState(state *State, criteria []Criterion) []ProjectValidationError {
	var errors []ProjectValidationError

	for _, criterion := range criteria {
		criterionErrors := criterion.ValidateState(state)
		errors = append(errors, criterionErrors...)
	}

	return errors
}
