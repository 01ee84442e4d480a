package db

import "context"

// RunStore defines the interface for match run database operations
type RunStore interface {
	GetMatchRuns(ctx context.Context) ([]MatchRun, error)
}

// AssignmentStore defines the interface for team assignment database operations
type AssignmentStore interface {
	GetTeamAssignments(ctx context.Context, runID string) ([]TeamAssignment, error)
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	RunStore
	AssignmentStore

	// SaveMatchRun stores a run and its assignments atomically
	SaveMatchRun(ctx context.Context, run *MatchRun, assignments []TeamAssignment) error

	Close()
}
