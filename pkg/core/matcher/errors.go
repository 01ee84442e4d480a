package matcher

import "errors"

var (
	// ErrInvariantViolation means the assignment state has been corrupted,
	// e.g. a student expected on a roster is missing
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrEmptyCollection means a selection or average was attempted over
	// nothing, usually an empty roster
	ErrEmptyCollection = errors.New("empty collection")

	// ErrNotEnoughProjects means a student swap was requested with fewer than
	// two active projects
	ErrNotEnoughProjects = errors.New("student swap needs at least two active projects")

	// ErrNoExchangeCandidates means no pool project was ranked by any member
	// of the project chosen for exchange
	ErrNoExchangeCandidates = errors.New("no candidate projects for exchange")
)
