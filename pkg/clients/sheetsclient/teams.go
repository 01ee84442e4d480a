package sheetsclient

import (
	"fmt"
	"strings"
	"time"
)

// NotesColumn is a free-form column that survives republishing a run
const NotesColumn = "Notes"

// headerRowIndex is the zero-based row holding the column headers.
// Rows above it carry the run summary.
const headerRowIndex = 2

// PublishedTeam represents a single row in the published teams tab
type PublishedTeam struct {
	Project     string   // Display name of the project
	Members     []string // Full names of the team members
	AverageRank float64
}

// PublishedTeams represents the complete published result of a match run
type PublishedTeams struct {
	RunID     string
	CreatedAt time.Time
	Energy    float64
	Teams     []PublishedTeam
}

// PublishTeams publishes a run's teams to Google Sheets.
// A new tab titled after the run is created if missing. An existing tab is
// rewritten in place, keeping whatever was typed into its Notes column.
func (c *Client) PublishTeams(spreadsheetID string, published *PublishedTeams) error {
	tabTitle := teamsTabTitle(published.RunID, published.CreatedAt)

	exists, err := c.SheetExists(spreadsheetID, tabTitle)
	if err != nil {
		return err
	}

	notes := map[string]interface{}{}
	if exists {
		existing, err := c.GetValues(spreadsheetID, fmt.Sprintf("%s!A1:ZZ", tabTitle))
		if err != nil {
			return fmt.Errorf("failed to read existing tab data: %w", err)
		}
		notes = existingNotes(existing)

		if err := c.ClearValues(spreadsheetID, fmt.Sprintf("%s!A1:ZZ", tabTitle)); err != nil {
			return fmt.Errorf("failed to clear existing tab: %w", err)
		}
	} else {
		if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	}

	rows := buildTeamRows(published, notes)
	if err := c.UpdateValues(spreadsheetID, fmt.Sprintf("%s!A1", tabTitle), rows); err != nil {
		return fmt.Errorf("failed to write teams: %w", err)
	}

	return nil
}

// teamsTabTitle creates a tab title in the format "Teams Mon Jan 02 2006 (1a2b3c4d)"
func teamsTabTitle(runID string, createdAt time.Time) string {
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("Teams %s (%s)", createdAt.Format("Mon Jan 02 2006"), short)
}

// buildTeamRows lays out the summary rows, the header and one row per team
func buildTeamRows(published *PublishedTeams, notes map[string]interface{}) [][]interface{} {
	maxMembers := 0
	for _, team := range published.Teams {
		if len(team.Members) > maxMembers {
			maxMembers = len(team.Members)
		}
	}

	header := []interface{}{"Project"}
	for i := 0; i < maxMembers; i++ {
		header = append(header, fmt.Sprintf("Member %d", i+1))
	}
	header = append(header, "Average rank", NotesColumn)

	rows := [][]interface{}{
		{"Run", published.RunID, "Energy", fmt.Sprintf("%.4f", published.Energy)},
		{},
		header,
	}

	for _, team := range published.Teams {
		row := []interface{}{team.Project}
		for i := 0; i < maxMembers; i++ {
			if i < len(team.Members) {
				row = append(row, team.Members[i])
			} else {
				row = append(row, "")
			}
		}

		note, ok := notes[team.Project]
		if !ok {
			note = ""
		}
		row = append(row, fmt.Sprintf("%.2f", team.AverageRank), note)
		rows = append(rows, row)
	}

	return rows
}

// existingNotes maps project name to its Notes cell in a previously published tab
func existingNotes(existing [][]interface{}) map[string]interface{} {
	notes := map[string]interface{}{}
	if len(existing) <= headerRowIndex {
		return notes
	}

	header := existing[headerRowIndex]
	projectCol := findColumnIndex(header, "Project")
	notesCol := findColumnIndex(header, NotesColumn)
	if projectCol == -1 || notesCol == -1 {
		return notes
	}

	for _, row := range existing[headerRowIndex+1:] {
		if projectCol >= len(row) || notesCol >= len(row) {
			continue
		}
		project, ok := row[projectCol].(string)
		if !ok || project == "" {
			continue
		}
		notes[project] = row[notesCol]
	}
	return notes
}

// findColumnIndex finds the index of a column by its header name
func findColumnIndex(header []interface{}, columnName string) int {
	for i, cell := range header {
		if str, ok := cell.(string); ok && strings.EqualFold(strings.TrimSpace(str), columnName) {
			return i
		}
	}
	return -1
}
