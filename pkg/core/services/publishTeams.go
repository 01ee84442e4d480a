package services

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/jakechorley/team-matcher/internal/config"
	"github.com/jakechorley/team-matcher/pkg/clients/sheetsclient"
	"github.com/jakechorley/team-matcher/pkg/db"
)

// PublishTeamsStore defines the store operations needed to publish a run
type PublishTeamsStore interface {
	db.RunStore
	db.AssignmentStore
}

// SheetsClient defines the sheets operations needed to publish teams
type SheetsClient interface {
	PublishTeams(spreadsheetID string, published *sheetsclient.PublishedTeams) error
}

// ListRuns returns every saved run, newest first
func ListRuns(ctx context.Context, store db.RunStore, logger *zap.Logger) ([]db.MatchRun, error) {
	runs, err := store.GetMatchRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match runs: %w", err)
	}

	sorted := slices.Clone(runs)
	slices.SortStableFunc(sorted, func(a, b db.MatchRun) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	logger.Debug("Fetched match runs", zap.Int("count", len(sorted)))
	return sorted, nil
}

// PublishTeams writes a saved run's teams to the configured spreadsheet.
// An empty runID publishes the most recent run.
func PublishTeams(
	ctx context.Context,
	store PublishTeamsStore,
	sheets SheetsClient,
	cfg *config.Config,
	logger *zap.Logger,
	runID string,
) (*sheetsclient.PublishedTeams, error) {
	if cfg.TeamsSheetID == "" {
		return nil, fmt.Errorf("teamsSheetID is not configured")
	}

	runs, err := store.GetMatchRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match runs: %w", err)
	}

	run, err := selectRun(runs, runID)
	if err != nil {
		return nil, err
	}
	logger.Debug("Publishing run", zap.String("run_id", run.ID), zap.Time("created_at", run.CreatedAt))

	assignments, err := store.GetTeamAssignments(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team assignments: %w", err)
	}
	if len(assignments) == 0 {
		return nil, fmt.Errorf("run %s has no team assignments", run.ID)
	}

	published := &sheetsclient.PublishedTeams{
		RunID:     run.ID,
		CreatedAt: run.CreatedAt,
		Energy:    run.Energy,
		Teams:     groupAssignments(assignments),
	}

	if err := sheets.PublishTeams(cfg.TeamsSheetID, published); err != nil {
		return nil, fmt.Errorf("failed to publish teams: %w", err)
	}

	logger.Info("Published teams",
		zap.String("run_id", run.ID),
		zap.Int("teams", len(published.Teams)))

	return published, nil
}

// selectRun finds the run with the given ID, or the latest run if runID is empty
func selectRun(runs []db.MatchRun, runID string) (*db.MatchRun, error) {
	if runID == "" {
		latest := db.LatestRun(runs)
		if latest == nil {
			return nil, fmt.Errorf("no match runs found")
		}
		return latest, nil
	}

	for i := range runs {
		if runs[i].ID == runID {
			return &runs[i], nil
		}
	}
	return nil, fmt.Errorf("match run not found: %s", runID)
}

// groupAssignments builds one published team per project, in order of first
// appearance, with members in assignment order
func groupAssignments(assignments []db.TeamAssignment) []sheetsclient.PublishedTeam {
	var teams []sheetsclient.PublishedTeam
	index := make(map[int]int)
	rankTotals := make(map[int]int)

	for _, a := range assignments {
		i, ok := index[a.ProjectID]
		if !ok {
			i = len(teams)
			index[a.ProjectID] = i
			teams = append(teams, sheetsclient.PublishedTeam{Project: a.ProjectName})
		}
		teams[i].Members = append(teams[i].Members, a.StudentName)
		rankTotals[a.ProjectID] += a.Rank
	}

	for projectID, i := range index {
		teams[i].AverageRank = float64(rankTotals[projectID]) / float64(len(teams[i].Members))
	}
	return teams
}
