package matcher

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/mroth/weightedrand/v2"
)

const (
	// DefaultExchangeProbability is the chance a proposed move is a project exchange
	DefaultExchangeProbability = 0.01

	// ExchangeCandidateLimit is how many of the most popular pool projects a
	// project exchange chooses between
	ExchangeCandidateLimit = 10

	// probabilityResolution converts probabilities into chooser weights
	probabilityResolution = 10000
)

// MoveGenerator proposes neighbour states by mutating the state in place
type MoveGenerator struct {
	rng     *rand.Rand
	chooser *weightedrand.Chooser[MoveKind, int]
}

// NewMoveGenerator creates a generator that picks a project exchange with the
// given probability and a student swap otherwise
func NewMoveGenerator(rng *rand.Rand, exchangeProbability float64) (*MoveGenerator, error) {
	if exchangeProbability < 0 || exchangeProbability > 1 {
		return nil, fmt.Errorf("exchange probability must be within [0, 1], got %v", exchangeProbability)
	}

	exchangeWeight := int(math.Round(exchangeProbability * probabilityResolution))
	chooser, err := weightedrand.NewChooser(
		weightedrand.NewChoice(MoveProjectExchange, exchangeWeight),
		weightedrand.NewChoice(MoveStudentSwap, probabilityResolution-exchangeWeight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create move chooser: %w", err)
	}

	return &MoveGenerator{
		rng:     rng,
		chooser: chooser,
	}, nil
}

// Propose applies one random move to the state and returns it so the caller
// can undo it. A project exchange with no candidates falls back to a student
// swap.
func (g *MoveGenerator) Propose(state *State) (Move, error) {
	if g.chooser.PickSource(g.rng) == MoveProjectExchange {
		move, err := g.ProposeProjectExchange(state)
		if err == nil {
			return move, nil
		}
		if !errors.Is(err, ErrNoExchangeCandidates) {
			return nil, err
		}
	}

	return g.ProposeStudentSwap(state)
}

// ProposeStudentSwap picks two different active projects and one student
// from each, and swaps them
func (g *MoveGenerator) ProposeStudentSwap(state *State) (*StudentSwap, error) {
	if len(state.Active) < 2 {
		return nil, fmt.Errorf("%w: have %d", ErrNotEnoughProjects, len(state.Active))
	}

	projectOne, idxOne, err := randomProject(g.rng, state.Active)
	if err != nil {
		return nil, err
	}

	// Draw the second project from the others so it always differs
	idxTwo, err := randomIndex(g.rng, len(state.Active)-1)
	if err != nil {
		return nil, err
	}
	if idxTwo >= idxOne {
		idxTwo++
	}
	projectTwo := state.Active[idxTwo]

	first, second := projectOne, projectTwo
	if g.rng.Intn(2) == 1 {
		first, second = projectTwo, projectOne
	}

	fromFirst, err := randomStudent(g.rng, first)
	if err != nil {
		return nil, err
	}
	fromSecond, err := randomStudent(g.rng, second)
	if err != nil {
		return nil, err
	}

	if err := SwapStudents(first, second, fromFirst, fromSecond); err != nil {
		return nil, err
	}

	return &StudentSwap{
		First:      first,
		Second:     second,
		FromFirst:  fromFirst,
		FromSecond: fromSecond,
	}, nil
}

// ProposeProjectExchange swaps a random active project for one of the pool
// projects its team members ranked most often
func (g *MoveGenerator) ProposeProjectExchange(state *State) (*ProjectExchange, error) {
	outgoing, _, err := randomProject(g.rng, state.Active)
	if err != nil {
		return nil, err
	}

	candidates := ExchangeCandidates(state, outgoing)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: project %d", ErrNoExchangeCandidates, outgoing.ID)
	}

	incoming, _, err := randomProject(g.rng, candidates)
	if err != nil {
		return nil, err
	}

	return ExchangeProjects(state, outgoing, incoming)
}

// ExchangeCandidates returns the pool projects ranked by at least one member
// of the project's team, most popular first, capped at ExchangeCandidateLimit.
// Popularity is the number of members who ranked the candidate. Ties keep
// pool order.
func ExchangeCandidates(state *State, project *Project) []*Project {
	ranked := make(map[int]bool)
	for _, s := range project.Roster {
		for _, id := range s.ProjectRankings {
			ranked[id] = true
		}
	}

	popularity := make(map[*Project]int)
	var reasonable []*Project
	for _, p := range state.Feasible {
		if !ranked[p.ID] || state.IsActive(p.ID) {
			continue
		}
		reasonable = append(reasonable, p)

		count := 0
		for _, s := range project.Roster {
			if s.RankOf(p.ID) < s.Unranked() {
				count++
			}
		}
		popularity[p] = count
	}

	slices.SortStableFunc(reasonable, func(a, b *Project) int {
		return popularity[b] - popularity[a]
	})

	if len(reasonable) > ExchangeCandidateLimit {
		reasonable = reasonable[:ExchangeCandidateLimit]
	}
	return reasonable
}
