package matcher

import (
	"fmt"
	"slices"
)

// MoveKind identifies the neighbour transformation a move applied
type MoveKind int

const (
	MoveStudentSwap MoveKind = iota
	MoveProjectExchange
)

func (k MoveKind) String() string {
	switch k {
	case MoveStudentSwap:
		return "student_swap"
	case MoveProjectExchange:
		return "project_exchange"
	default:
		return fmt.Sprintf("MoveKind(%d)", int(k))
	}
}

// Move is a transformation that has already been applied to a state.
// It carries everything needed to reverse itself.
type Move interface {
	Kind() MoveKind

	// Undo reverses the move. The state must not have been changed since
	// the move was applied, other than by moves that were already undone.
	Undo(state *State) error

	String() string
}

// StudentSwap exchanges one student between two active projects
type StudentSwap struct {
	First  *Project
	Second *Project

	// FromFirst moved from First to Second, FromSecond from Second to First
	FromFirst  *Student
	FromSecond *Student
}

func (m *StudentSwap) Kind() MoveKind { return MoveStudentSwap }

func (m *StudentSwap) String() string {
	return fmt.Sprintf("swap student %d (project %d) with student %d (project %d)",
		m.FromFirst.ID, m.First.ID, m.FromSecond.ID, m.Second.ID)
}

// Undo swaps the same two students back
func (m *StudentSwap) Undo(state *State) error {
	return SwapStudents(m.First, m.Second, m.FromSecond, m.FromFirst)
}

// SwapStudents moves fromFirst from first to second and fromSecond from
// second to first. Both roster sizes are unchanged. Fails without modifying
// either roster if a student is not where it is expected to be.
func SwapStudents(first, second *Project, fromFirst, fromSecond *Student) error {
	if first == second {
		return fmt.Errorf("%w: cannot swap students within project %d", ErrInvariantViolation, first.ID)
	}
	if !first.Contains(fromFirst) {
		return fmt.Errorf("%w: student %d is not in project %d", ErrInvariantViolation, fromFirst.ID, first.ID)
	}
	if !second.Contains(fromSecond) {
		return fmt.Errorf("%w: student %d is not in project %d", ErrInvariantViolation, fromSecond.ID, second.ID)
	}

	first.removeStudent(fromFirst)
	second.removeStudent(fromSecond)

	first.addStudent(fromSecond)
	second.addStudent(fromFirst)

	return nil
}

// ProjectExchange replaced an active project with one from the feasible
// pool, handing the outgoing team over to the incoming project
type ProjectExchange struct {
	Outgoing *Project
	Incoming *Project

	// Positions the projects held before the exchange, so undo restores order
	ActiveIndex   int
	FeasibleIndex int

	// TeamSize is the number of students transplanted
	TeamSize int
}

func (m *ProjectExchange) Kind() MoveKind { return MoveProjectExchange }

func (m *ProjectExchange) String() string {
	return fmt.Sprintf("exchange project %d for project %d (%d students)",
		m.Outgoing.ID, m.Incoming.ID, m.TeamSize)
}

// Undo puts the outgoing project back in its active slot with its team and
// returns the incoming project to the pool
func (m *ProjectExchange) Undo(state *State) error {
	activeIdx := slices.Index(state.Active, m.Incoming)
	if activeIdx < 0 {
		return fmt.Errorf("%w: project %d is not active", ErrInvariantViolation, m.Incoming.ID)
	}
	feasibleIdx := slices.Index(state.Feasible, m.Outgoing)
	if feasibleIdx < 0 {
		return fmt.Errorf("%w: project %d is not in the feasible pool", ErrInvariantViolation, m.Outgoing.ID)
	}
	if len(m.Outgoing.Roster) > 0 {
		return fmt.Errorf("%w: returning project %d already has students", ErrInvariantViolation, m.Outgoing.ID)
	}

	state.Active = slices.Delete(state.Active, activeIdx, activeIdx+1)
	state.Active = slices.Insert(state.Active, min(m.ActiveIndex, len(state.Active)), m.Outgoing)

	state.Feasible = slices.Delete(state.Feasible, feasibleIdx, feasibleIdx+1)
	state.Feasible = slices.Insert(state.Feasible, min(m.FeasibleIndex, len(state.Feasible)), m.Incoming)

	transplantRoster(m.Incoming, m.Outgoing)
	return nil
}

// ExchangeProjects removes outgoing from the active set, appends incoming,
// moves the outgoing team onto incoming and returns outgoing to the pool
func ExchangeProjects(state *State, outgoing, incoming *Project) (*ProjectExchange, error) {
	activeIdx := slices.Index(state.Active, outgoing)
	if activeIdx < 0 {
		return nil, fmt.Errorf("%w: project %d is not active", ErrInvariantViolation, outgoing.ID)
	}
	if state.IsActive(incoming.ID) {
		return nil, fmt.Errorf("%w: project %d is already active", ErrInvariantViolation, incoming.ID)
	}
	feasibleIdx := slices.Index(state.Feasible, incoming)
	if feasibleIdx < 0 {
		return nil, fmt.Errorf("%w: project %d is not in the feasible pool", ErrInvariantViolation, incoming.ID)
	}
	if len(incoming.Roster) > 0 {
		return nil, fmt.Errorf("%w: incoming project %d already has students", ErrInvariantViolation, incoming.ID)
	}

	state.Active = slices.Delete(state.Active, activeIdx, activeIdx+1)
	state.Active = append(state.Active, incoming)

	state.Feasible = slices.Delete(state.Feasible, feasibleIdx, feasibleIdx+1)
	state.Feasible = append(state.Feasible, outgoing)

	transplantRoster(outgoing, incoming)

	return &ProjectExchange{
		Outgoing:      outgoing,
		Incoming:      incoming,
		ActiveIndex:   activeIdx,
		FeasibleIndex: feasibleIdx,
		TeamSize:      len(incoming.Roster),
	}, nil
}

// transplantRoster hands the whole team from one project to another
func transplantRoster(from, to *Project) {
	to.Roster = from.Roster
	from.Roster = nil
}
