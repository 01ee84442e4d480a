package services

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/team-matcher/internal/config"
	"github.com/jakechorley/team-matcher/pkg/core/diversity"
	"github.com/jakechorley/team-matcher/pkg/core/matcher"
	"github.com/jakechorley/team-matcher/pkg/core/matcher/criteria"
	"github.com/jakechorley/team-matcher/pkg/db"
)

// MatchStore defines the store operations needed to record a matching run
type MatchStore interface {
	SaveMatchRun(ctx context.Context, run *db.MatchRun, assignments []db.TeamAssignment) error
}

// MatchOptions are the per-invocation settings of a matching run
type MatchOptions struct {
	// DryRun skips saving the run even if a store is available
	DryRun bool

	// Seed overrides the configured seed
	Seed *int64
}

// MatchResult is everything a matching run produced
type MatchResult struct {
	Input   *Input
	State   *matcher.State
	Outcome *matcher.AnnealOutcome

	Breakdown *matcher.EnergyBreakdown
	Issues    []matcher.ProjectValidationError

	Run         *db.MatchRun
	Assignments []db.TeamAssignment

	// Saved is true if the run was written to the store
	Saved bool
}

// MatchTeams loads the input, builds a starting assignment and anneals it.
//
// Steps:
//  1. Load students and projects, filter and check feasibility
//  2. Build the diversity model over every student (if enabled)
//  3. Assign students to the most demanded projects
//  4. Anneal with the configured schedule until done or ctx is cancelled
//  5. Save the best state as a run unless this is a dry run or store is nil
func MatchTeams(
	ctx context.Context,
	store MatchStore,
	loader InputLoader,
	cfg *config.Config,
	logger *zap.Logger,
	opts MatchOptions,
) (*MatchResult, error) {
	input, err := LoadInput(loader, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := CheckInput(input.Students, input.Feasible, input.Quota); err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if cfg.Annealing.Seed != nil {
		seed = *cfg.Annealing.Seed
	}
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Info("Starting match", zap.Int64("seed", seed), zap.Bool("diversity", cfg.DiversityEnabled()))

	var model *diversity.Model
	if cfg.DiversityEnabled() {
		population := make([][]float64, len(input.Students))
		for i, s := range input.Students {
			population[i] = s.NumericProperties()
		}
		model, err = diversity.NewModel(population)
		if err != nil {
			return nil, fmt.Errorf("failed to build diversity model: %w", err)
		}
	}

	state, err := matcher.InitState(matcher.InitConfig{
		Students: input.Students,
		Projects: input.Feasible,
		Quota:    input.Quota,
		Model:    model,
		Rand:     rng,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build initial assignment: %w", err)
	}
	logger.Debug("Built initial assignment",
		zap.Int("teams", len(state.Active)),
		zap.Int("pool", len(state.Feasible)))

	energyCriteria, err := buildCriteria(cfg)
	if err != nil {
		return nil, err
	}

	outcome, err := anneal(ctx, state, energyCriteria, cfg, rng, logger)
	if err != nil {
		return nil, err
	}

	breakdown, err := matcher.Evaluate(state, energyCriteria)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate final state: %w", err)
	}

	issues := matcher.ValidateState(state, energyCriteria)
	for _, issue := range issues {
		logger.Warn("Team falls short",
			zap.Int("project_id", issue.ProjectID),
			zap.String("project", issue.ProjectName),
			zap.String("criterion", issue.CriterionName),
			zap.String("description", issue.Description))
	}

	run, assignments := buildRun(state, outcome, seed, len(input.Students))
	result := &MatchResult{
		Input:       input,
		State:       state,
		Outcome:     outcome,
		Breakdown:   breakdown,
		Issues:      issues,
		Run:         run,
		Assignments: assignments,
	}

	if opts.DryRun || store == nil {
		logger.Info("Not saving run", zap.Bool("dry_run", opts.DryRun))
		return result, nil
	}

	// Saving must survive an interrupted search, so ctx is not reused
	if err := store.SaveMatchRun(context.WithoutCancel(ctx), run, assignments); err != nil {
		return nil, fmt.Errorf("failed to save match run: %w", err)
	}
	result.Saved = true
	logger.Info("Saved match run", zap.String("run_id", run.ID), zap.Int("assignments", len(assignments)))

	return result, nil
}

// buildCriteria assembles the energy function from the config
func buildCriteria(cfg *config.Config) ([]matcher.Criterion, error) {
	cost, err := criteria.NewCostFunc(
		cfg.PreferenceCost.Policy,
		cfg.PreferenceCost.Table,
		cfg.NumberProjectRankings,
		cfg.PreferenceCost.UnrankedCost,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build preference cost: %w", err)
	}

	if cfg.DiversityEnabled() {
		return criteria.Default(cost), nil
	}
	return []matcher.Criterion{
		criteria.NewPreferenceCriterion(criteria.WeightPreference, cost),
		criteria.NewCompositionCriterion(criteria.WeightComposition, criteria.PenaltyPerShortfall),
	}, nil
}

// schedule applies the configured overrides to the default schedule
func schedule(cfg *config.Config) matcher.Schedule {
	s := matcher.DefaultSchedule()
	if cfg.Annealing.Steps > 0 {
		s.Steps = cfg.Annealing.Steps
	}
	if cfg.Annealing.MaxTemperature > 0 {
		s.MaxTemperature = cfg.Annealing.MaxTemperature
	}
	if cfg.Annealing.MinTemperature > 0 {
		s.MinTemperature = cfg.Annealing.MinTemperature
	}
	if cfg.Annealing.Updates > 0 {
		s.Updates = cfg.Annealing.Updates
	}
	return s
}

// anneal runs the optimiser. A single team has no student swaps, so its
// starting assignment is returned as is.
func anneal(
	ctx context.Context,
	state *matcher.State,
	energyCriteria []matcher.Criterion,
	cfg *config.Config,
	rng *rand.Rand,
	logger *zap.Logger,
) (*matcher.AnnealOutcome, error) {
	if len(state.Active) < 2 {
		energy, err := matcher.Energy(state, energyCriteria)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate initial state: %w", err)
		}
		logger.Warn("Only one team, skipping annealing")
		return &matcher.AnnealOutcome{State: state, Energy: energy, InitialEnergy: energy}, nil
	}

	exchangeProbability := matcher.DefaultExchangeProbability
	if cfg.Annealing.ExchangeProbability != nil {
		exchangeProbability = *cfg.Annealing.ExchangeProbability
	}
	generator, err := matcher.NewMoveGenerator(rng, exchangeProbability)
	if err != nil {
		return nil, err
	}

	outcome, err := matcher.Anneal(ctx, state, matcher.AnnealConfig{
		Schedule:  schedule(cfg),
		Criteria:  energyCriteria,
		Generator: generator,
		Rand:      rng,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("annealing failed: %w", err)
	}
	return outcome, nil
}

// buildRun records the final state as a run and one assignment per student,
// ordered by project then student
func buildRun(state *matcher.State, outcome *matcher.AnnealOutcome, seed int64, students int) (*db.MatchRun, []db.TeamAssignment) {
	run := &db.MatchRun{
		ID:            uuid.New().String(),
		CreatedAt:     time.Now().UTC(),
		Seed:          seed,
		Energy:        outcome.Energy,
		InitialEnergy: outcome.InitialEnergy,
		Steps:         outcome.Steps,
		StudentCount:  students,
		TeamCount:     len(state.Active),
		Interrupted:   outcome.Interrupted,
	}

	var assignments []db.TeamAssignment
	for _, p := range state.Active {
		for _, s := range p.Roster {
			assignments = append(assignments, db.TeamAssignment{
				ID:          uuid.New().String(),
				RunID:       run.ID,
				ProjectID:   p.ID,
				ProjectName: p.Name,
				StudentID:   s.ID,
				StudentName: s.Name,
				Rank:        s.RankOf(p.ID),
			})
		}
	}
	slices.SortFunc(assignments, func(a, b db.TeamAssignment) int {
		if a.ProjectID != b.ProjectID {
			return a.ProjectID - b.ProjectID
		}
		return a.StudentID - b.StudentID
	})

	return run, assignments
}
