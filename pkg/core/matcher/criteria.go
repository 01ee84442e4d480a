package matcher

// ProjectValidationError describes a way a final team falls short of a criterion
type ProjectValidationError struct {
	ProjectID     int
	ProjectName   string
	CriterionName string
	Description   string
}

// Criterion is one term of the energy function.
// The energy of a state is the sum over criteria of Weight() * Score(state).
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// Score computes the unweighted term for the whole state.
	// It must not modify the state and must be deterministic in its contents.
	Score(state *State) (float64, error)

	// Weight multiplies Score when summing the energy.
	// Negative weights turn a score into a reward.
	Weight() float64

	// ValidateState reports teams in the final state that this criterion
	// considers unsatisfactory. It does not affect the energy.
	ValidateState(state *State) []ProjectValidationError
}
