package sheetsclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamsTabTitle(t *testing.T) {
	created := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "Teams Mon Mar 03 2025 (1a2b3c4d)", teamsTabTitle("1a2b3c4d-0000-0000-0000-000000000000", created))
	assert.Equal(t, "Teams Mon Mar 03 2025 (abc)", teamsTabTitle("abc", created))
}

func TestBuildTeamRows(t *testing.T) {
	published := &PublishedTeams{
		RunID:  "run-1",
		Energy: 2.5,
		Teams: []PublishedTeam{
			{Project: "Acme: Widgets", Members: []string{"Al Jones", "Bea Smith", "Cy Young"}, AverageRank: 1.333},
			{Project: "Gadgets", Members: []string{"Di Prince"}, AverageRank: 2},
		},
	}

	rows := buildTeamRows(published, map[string]interface{}{"Gadgets": "kickoff Tuesday"})

	require.Len(t, rows, 5)
	assert.Equal(t, []interface{}{"Run", "run-1", "Energy", "2.5000"}, rows[0])
	assert.Empty(t, rows[1])
	assert.Equal(t, []interface{}{"Project", "Member 1", "Member 2", "Member 3", "Average rank", "Notes"}, rows[2])
	assert.Equal(t, []interface{}{"Acme: Widgets", "Al Jones", "Bea Smith", "Cy Young", "1.33", ""}, rows[3])
	assert.Equal(t, []interface{}{"Gadgets", "Di Prince", "", "", "2.00", "kickoff Tuesday"}, rows[4])
}

func TestExistingNotes(t *testing.T) {
	tests := []struct {
		name     string
		existing [][]interface{}
		want     map[string]interface{}
	}{
		{
			name:     "too few rows",
			existing: [][]interface{}{{"Run", "x"}},
			want:     map[string]interface{}{},
		},
		{
			name: "no notes column",
			existing: [][]interface{}{
				{"Run", "x"},
				{},
				{"Project", "Member 1"},
				{"Gadgets", "Di Prince"},
			},
			want: map[string]interface{}{},
		},
		{
			name: "notes kept by project",
			existing: [][]interface{}{
				{"Run", "x"},
				{},
				{"Project", "Member 1", "Average rank", "notes"},
				{"Gadgets", "Di Prince", "2.00", "kickoff Tuesday"},
				{"Widgets", "Al Jones"},
				{"", "", "", "orphan"},
			},
			want: map[string]interface{}{"Gadgets": "kickoff Tuesday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, existingNotes(tt.existing))
		})
	}
}
