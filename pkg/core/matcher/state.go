package matcher

import (
	"fmt"
	"slices"

	"github.com/jakechorley/team-matcher/pkg/core/diversity"
)

// State is the assignment being optimised.
//
// Invariants:
//   - A project ID appears in exactly one of Active and Feasible
//   - A student is on at most one roster across Active
//   - Feasible projects have empty rosters
//   - The number of assigned students never changes after NewState
//
// A State is owned by a single optimiser; nothing else may mutate it while a
// search is running.
type State struct {
	// Active projects each host one team
	Active []*Project

	// Model is the diversity model shared by every diversity calculation in the run
	Model *diversity.Model

	// Feasible projects passed the ranking support filter but host no team
	Feasible []*Project

	population int
	counted    bool
}

// NewState builds a State and checks its invariants
func NewState(active []*Project, model *diversity.Model, feasible []*Project) (*State, error) {
	state := &State{
		Active:   active,
		Model:    model,
		Feasible: feasible,
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	if model != nil {
		for _, p := range active {
			for _, student := range p.Roster {
				if n := len(student.NumericProperties()); n != model.Dims() {
					return nil, fmt.Errorf("%w: student %d has %d attributes, model expects %d",
						ErrInvariantViolation, student.ID, n, model.Dims())
				}
			}
		}
	}

	state.population = state.Population()
	state.counted = true

	return state, nil
}

// Population returns the number of students across all active rosters
func (s *State) Population() int {
	total := 0
	for _, p := range s.Active {
		total += len(p.Roster)
	}
	return total
}

// IsActive returns true if a project with this ID is in the active set
func (s *State) IsActive(projectID int) bool {
	return slices.ContainsFunc(s.Active, func(p *Project) bool { return p.ID == projectID })
}

// Validate checks the state invariants and returns the first violation found
func (s *State) Validate() error {
	seenProjects := make(map[int]string)
	seenStudents := make(map[int]int)

	for _, p := range s.Active {
		if where, ok := seenProjects[p.ID]; ok {
			return fmt.Errorf("%w: project %d appears in active set and %s", ErrInvariantViolation, p.ID, where)
		}
		seenProjects[p.ID] = "active set"

		for _, student := range p.Roster {
			if other, ok := seenStudents[student.ID]; ok {
				return fmt.Errorf("%w: student %d is on projects %d and %d", ErrInvariantViolation, student.ID, other, p.ID)
			}
			seenStudents[student.ID] = p.ID
		}
	}

	for _, p := range s.Feasible {
		if where, ok := seenProjects[p.ID]; ok {
			return fmt.Errorf("%w: project %d appears in feasible pool and %s", ErrInvariantViolation, p.ID, where)
		}
		seenProjects[p.ID] = "feasible pool"

		if len(p.Roster) > 0 {
			return fmt.Errorf("%w: feasible project %d has %d students", ErrInvariantViolation, p.ID, len(p.Roster))
		}
	}

	if s.counted && len(seenStudents) != s.population {
		return fmt.Errorf("%w: %d students assigned, expected %d", ErrInvariantViolation, len(seenStudents), s.population)
	}

	return nil
}

// Snapshot records the active/feasible partition and every roster so the
// state can later be rolled back to it
type Snapshot struct {
	active   []*Project
	feasible []*Project
	rosters  map[*Project][]*Student
}

// Snapshot captures the current assignment
func (s *State) Snapshot() *Snapshot {
	snap := &Snapshot{
		active:   slices.Clone(s.Active),
		feasible: slices.Clone(s.Feasible),
		rosters:  make(map[*Project][]*Student, len(s.Active)),
	}
	for _, p := range s.Active {
		snap.rosters[p] = slices.Clone(p.Roster)
	}
	return snap
}

// Restore rolls the state back to a snapshot taken from it
func (s *State) Restore(snap *Snapshot) {
	s.Active = slices.Clone(snap.active)
	s.Feasible = slices.Clone(snap.feasible)

	for _, p := range s.Feasible {
		p.Roster = nil
	}
	for _, p := range s.Active {
		p.Roster = slices.Clone(snap.rosters[p])
	}
}
