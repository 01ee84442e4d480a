package matcher

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Schedule controls the temperature of an annealing run.
// Temperature cools exponentially from MaxTemperature to MinTemperature
// over Steps iterations.
type Schedule struct {
	MaxTemperature float64
	MinTemperature float64
	Steps          int

	// Updates is how many progress reports to log over the run (0 for none)
	Updates int
}

// DefaultSchedule returns the schedule used when none is configured
func DefaultSchedule() Schedule {
	return Schedule{
		MaxTemperature: 25000,
		MinTemperature: 2.5,
		Steps:          50000,
		Updates:        100,
	}
}

// Temperature returns the temperature at the given step
func (s Schedule) Temperature(step int) float64 {
	if s.Steps <= 0 {
		return s.MinTemperature
	}
	factor := -math.Log(s.MaxTemperature / s.MinTemperature)
	return s.MaxTemperature * math.Exp(factor*float64(step)/float64(s.Steps))
}

func (s Schedule) validate() error {
	if s.Steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", s.Steps)
	}
	if s.MinTemperature <= 0 || s.MaxTemperature <= 0 {
		return fmt.Errorf("temperatures must be positive, got max %v min %v", s.MaxTemperature, s.MinTemperature)
	}
	if s.MinTemperature > s.MaxTemperature {
		return fmt.Errorf("min temperature %v exceeds max temperature %v", s.MinTemperature, s.MaxTemperature)
	}
	return nil
}

// AnnealConfig contains everything needed to run the optimiser
type AnnealConfig struct {
	Schedule  Schedule
	Criteria  []Criterion
	Generator *MoveGenerator

	// Rand drives acceptance decisions; the generator has its own source.
	// A time-seeded source is used if nil.
	Rand *rand.Rand

	Logger *zap.Logger
}

// AnnealOutcome is the result of an annealing run
type AnnealOutcome struct {
	// State is the best state seen, restored into the state passed to Anneal
	State         *State
	Energy        float64
	InitialEnergy float64

	Steps    int
	Accepted int
	Improved int
	Rejected int

	// Interrupted is true if the context was cancelled before all steps ran
	Interrupted bool
}

// Anneal runs simulated annealing on the state in place.
//
// Each step proposes a move and evaluates the new energy. Moves that lower
// the energy are kept; moves that raise it are kept with probability
// exp(-dE/T) and otherwise undone. The best state seen is restored before
// returning.
func Anneal(ctx context.Context, state *State, cfg AnnealConfig) (*AnnealOutcome, error) {
	if err := cfg.Schedule.validate(); err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}
	if cfg.Generator == nil {
		return nil, fmt.Errorf("move generator is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	energy, err := Energy(state, cfg.Criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate initial state: %w", err)
	}

	outcome := &AnnealOutcome{
		State:         state,
		InitialEnergy: energy,
	}

	best := state.Snapshot()
	bestEnergy := energy

	updateEvery := 0
	if cfg.Schedule.Updates > 0 {
		updateEvery = max(cfg.Schedule.Steps/cfg.Schedule.Updates, 1)
	}

	logger.Info("Starting annealing",
		zap.Int("steps", cfg.Schedule.Steps),
		zap.Float64("max_temperature", cfg.Schedule.MaxTemperature),
		zap.Float64("min_temperature", cfg.Schedule.MinTemperature),
		zap.Float64("initial_energy", energy))

	// Counters since the last progress update
	windowAccepted, windowImproved, windowSteps := 0, 0, 0

	for step := 0; step < cfg.Schedule.Steps; step++ {
		if err := ctx.Err(); err != nil {
			outcome.Interrupted = true
			logger.Warn("Annealing interrupted", zap.Int("step", step), zap.Error(err))
			break
		}

		temperature := cfg.Schedule.Temperature(step)

		move, err := cfg.Generator.Propose(state)
		if err != nil {
			return nil, fmt.Errorf("step %d: failed to propose move: %w", step, err)
		}

		candidate, err := Energy(state, cfg.Criteria)
		if err != nil {
			return nil, fmt.Errorf("step %d: failed to evaluate %s: %w", step, move.Kind(), err)
		}

		delta := candidate - energy
		outcome.Steps++
		windowSteps++

		if delta > 0 && math.Exp(-delta/temperature) < rng.Float64() {
			if err := move.Undo(state); err != nil {
				return nil, fmt.Errorf("step %d: failed to undo %s: %w", step, move.Kind(), err)
			}
			outcome.Rejected++
		} else {
			if delta < 0 {
				outcome.Improved++
				windowImproved++
			}
			outcome.Accepted++
			windowAccepted++
			energy = candidate

			if energy < bestEnergy {
				best = state.Snapshot()
				bestEnergy = energy
			}
		}

		if ce := logger.Check(zapcore.DebugLevel, "Move evaluated"); ce != nil {
			ce.Write(
				zap.Int("step", step),
				zap.Stringer("kind", move.Kind()),
				zap.Stringer("move", move),
				zap.Float64("candidate_energy", candidate),
				zap.Float64("energy", energy),
				zap.Any("teams", rosterIDs(state)))
		}

		if updateEvery > 0 && (step+1)%updateEvery == 0 {
			logger.Info("Annealing progress",
				zap.Int("step", step+1),
				zap.Float64("temperature", temperature),
				zap.Float64("energy", energy),
				zap.Float64("best_energy", bestEnergy),
				zap.Float64("accept_rate", float64(windowAccepted)/float64(windowSteps)),
				zap.Float64("improve_rate", float64(windowImproved)/float64(windowSteps)))
			windowAccepted, windowImproved, windowSteps = 0, 0, 0
		}
	}

	state.Restore(best)
	outcome.Energy = bestEnergy

	logger.Info("Annealing finished",
		zap.Int("steps", outcome.Steps),
		zap.Int("accepted", outcome.Accepted),
		zap.Int("improved", outcome.Improved),
		zap.Int("rejected", outcome.Rejected),
		zap.Float64("initial_energy", outcome.InitialEnergy),
		zap.Float64("best_energy", bestEnergy),
		zap.Bool("interrupted", outcome.Interrupted))

	return outcome, nil
}

// rosterIDs lists the team members of each active project by ID
func rosterIDs(state *State) map[int][]int {
	teams := make(map[int][]int, len(state.Active))
	for _, p := range state.Active {
		teams[p.ID] = p.StudentIDs()
	}
	return teams
}
