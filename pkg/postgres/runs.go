package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jakechorley/team-matcher/pkg/db"
)

var assignmentColumns = []string{
	"id", "run_id", "project_id", "project_name", "student_id", "student_name", "rank",
}

// GetMatchRuns retrieves all match runs, newest first
func (d *DB) GetMatchRuns(ctx context.Context) ([]db.MatchRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, created_at, seed, energy, initial_energy, steps, student_count, team_count, interrupted
		FROM match_run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query match runs: %w", err)
	}

	runs, err := pgx.CollectRows(rows, pgx.RowToStructByName[db.MatchRun])
	if err != nil {
		return nil, fmt.Errorf("failed to collect match runs: %w", err)
	}
	return runs, nil
}

// GetTeamAssignments retrieves the assignments of one run ordered by project then student
func (d *DB) GetTeamAssignments(ctx context.Context, runID string) ([]db.TeamAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, project_id, project_name, student_id, student_name, rank
		FROM team_assignment
		WHERE run_id = $1
		ORDER BY project_id, student_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team assignments: %w", err)
	}

	assignments, err := pgx.CollectRows(rows, pgx.RowToStructByName[db.TeamAssignment])
	if err != nil {
		return nil, fmt.Errorf("failed to collect team assignments: %w", err)
	}
	return assignments, nil
}

// SaveMatchRun inserts a run and copies its assignments in a single transaction
func (d *DB) SaveMatchRun(ctx context.Context, run *db.MatchRun, assignments []db.TeamAssignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO match_run (id, seed, energy, initial_energy, steps, student_count, team_count, interrupted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, run.ID, run.Seed, run.Energy, run.InitialEnergy, run.Steps, run.StudentCount, run.TeamCount, run.Interrupted).
		Scan(&run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert match run: %w", err)
	}

	if len(assignments) > 0 {
		runUUID, err := toPgUUID(run.ID)
		if err != nil {
			return err
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"team_assignment"},
			assignmentColumns,
			pgx.CopyFromSlice(len(assignments), func(i int) ([]any, error) {
				a := assignments[i]
				id, err := toPgUUID(a.ID)
				if err != nil {
					return nil, err
				}
				return []any{id, runUUID, a.ProjectID, a.ProjectName, a.StudentID, a.StudentName, a.Rank}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to insert team assignments: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// toPgUUID converts a string ID for the binary COPY protocol
func toPgUUID(id string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("invalid ID %q: %w", id, err)
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}
