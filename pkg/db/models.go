package db

import "time"

// MatchRun represents a database record of one completed matching run
type MatchRun struct {
	ID            string    `db:"id"`
	CreatedAt     time.Time `db:"created_at"`
	Seed          int64     `db:"seed"`
	Energy        float64   `db:"energy"`
	InitialEnergy float64   `db:"initial_energy"`
	Steps         int       `db:"steps"`
	StudentCount  int       `db:"student_count"`
	TeamCount     int       `db:"team_count"`
	Interrupted   bool      `db:"interrupted"`
}

// TeamAssignment represents a database record placing one student on a project.
// Names are stored as they were at match time so a run can be published
// without the input files.
type TeamAssignment struct {
	ID          string `db:"id"`
	RunID       string `db:"run_id"`
	ProjectID   int    `db:"project_id"`
	ProjectName string `db:"project_name"`
	StudentID   int    `db:"student_id"`
	StudentName string `db:"student_name"`
	Rank        int    `db:"rank"`
}

// LatestRun returns the most recently created run, or nil if there are none
func LatestRun(runs []MatchRun) *MatchRun {
	var latest *MatchRun
	for i := range runs {
		if latest == nil || runs[i].CreatedAt.After(latest.CreatedAt) {
			latest = &runs[i]
		}
	}
	return latest
}
