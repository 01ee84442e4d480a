package services

import (
	"context"
	"fmt"

	"github.com/jakechorley/team-matcher/internal/config"
	"github.com/jakechorley/team-matcher/pkg/clients/sheetsclient"
	"github.com/jakechorley/team-matcher/pkg/core/model"
	"github.com/jakechorley/team-matcher/pkg/db"
)

type mockLoader struct {
	students    []model.Student
	projects    []model.Project
	studentsErr error
	projectsErr error

	studentsPath string
	rankings     int
}

func (m *mockLoader) ListStudents(path string, rankings int) ([]model.Student, error) {
	m.studentsPath = path
	m.rankings = rankings
	return m.students, m.studentsErr
}

func (m *mockLoader) ListProjects(path string) ([]model.Project, error) {
	return m.projects, m.projectsErr
}

type mockStore struct {
	runs        []db.MatchRun
	assignments map[string][]db.TeamAssignment

	saveErr  error
	saveCall int
}

func (m *mockStore) SaveMatchRun(ctx context.Context, run *db.MatchRun, assignments []db.TeamAssignment) error {
	m.saveCall++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs = append(m.runs, *run)
	if m.assignments == nil {
		m.assignments = make(map[string][]db.TeamAssignment)
	}
	m.assignments[run.ID] = assignments
	return nil
}

func (m *mockStore) GetMatchRuns(ctx context.Context) ([]db.MatchRun, error) {
	return m.runs, nil
}

func (m *mockStore) GetTeamAssignments(ctx context.Context, runID string) ([]db.TeamAssignment, error) {
	return m.assignments[runID], nil
}

type mockSheetsClient struct {
	spreadsheetID string
	published     *sheetsclient.PublishedTeams
	err           error
}

func (m *mockSheetsClient) PublishTeams(spreadsheetID string, published *sheetsclient.PublishedTeams) error {
	m.spreadsheetID = spreadsheetID
	m.published = published
	return m.err
}

// strongStudent is a student who satisfies every attribute composition rule
func strongStudent(id int, track model.Track, rankings ...int) model.Student {
	return model.Student{
		ID:              id,
		Track:           track,
		CodingAbility:   4,
		WorkExperience:  4,
		BusinessAbility: 4,
		Rankings:        rankings,
		FirstName:       "Student",
		LastName:        fmt.Sprint(id),
	}
}

// twoTeamLoader returns four students who each have a distinct first choice
// arrangement: {1, 3} want project 10, {2, 4} want project 20
func twoTeamLoader() *mockLoader {
	return &mockLoader{
		students: []model.Student{
			strongStudent(1, model.TrackMBA, 10, 20),
			strongStudent(2, model.TrackMBA, 20, 10),
			strongStudent(3, model.TrackMEng, 10, 20),
			strongStudent(4, model.TrackMEng, 20, 10),
		},
		projects: []model.Project{
			{ID: 10, Name: "Widgets", Company: "Acme"},
			{ID: 20, Name: "Gadgets"},
			{ID: 30, Name: "Unloved", Company: "Nobody"},
		},
	}
}

func testConfig() *config.Config {
	seed := int64(7)
	return &config.Config{
		Files: config.Files{
			Students:          "students.csv",
			ProjectIDMappings: "projects.csv",
			Output:            "teams.csv",
		},
		TeamComposition:       config.TeamComposition{MinTrackA: 1, MinTrackB: 1},
		NumberProjectRankings: 2,
		Annealing: config.Annealing{
			Steps:          500,
			MaxTemperature: 10,
			MinTemperature: 0.01,
			Updates:        5,
			Seed:           &seed,
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}
