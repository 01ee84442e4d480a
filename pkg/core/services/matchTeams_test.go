package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/team-matcher/internal/config"
	"github.com/jakechorley/team-matcher/pkg/clients/csvclient"
	"github.com/jakechorley/team-matcher/pkg/core/matcher"
	"github.com/jakechorley/team-matcher/pkg/core/model"
)

func TestLoadInput(t *testing.T) {
	loader := twoTeamLoader()
	cfg := testConfig()

	input, err := LoadInput(loader, cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "students.csv", loader.studentsPath)
	assert.Equal(t, 2, loader.rankings)
	assert.Len(t, input.Students, 4)
	assert.Len(t, input.Projects, 3)
	assert.Equal(t, []int{10, 20}, projectIDs(input.Feasible))
	assert.Equal(t, "Acme: Widgets", input.ProjectNames[10])
	assert.Equal(t, "Gadgets", input.ProjectNames[20])
	assert.Equal(t, matcher.Quota{MinTrackA: 1, MinTrackB: 1}, input.Quota)
}

func TestLoadInput_UnknownRankedProject(t *testing.T) {
	loader := twoTeamLoader()
	loader.students[0].Rankings = []int{10, 99}

	_, err := LoadInput(loader, testConfig(), zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, csvclient.ErrInput)
}

func TestLoadInput_LoaderErrors(t *testing.T) {
	loader := twoTeamLoader()
	loader.projectsErr = errors.New("boom")

	_, err := LoadInput(loader, testConfig(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load projects")

	loader = twoTeamLoader()
	loader.studentsErr = errors.New("boom")

	_, err = LoadInput(loader, testConfig(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load students")
}

func TestBuildStudents(t *testing.T) {
	built := BuildStudents([]model.Student{
		{ID: 4, Track: model.TrackMEng, CSBackground: 1, CodingAbility: 3, WorkExperience: 2, BusinessAbility: 1, Rankings: []int{7, 8}, FirstName: "Ada", LastName: "Lovelace"},
	})

	require.Len(t, built, 1)
	assert.Equal(t, &matcher.Student{
		ID:              4,
		Name:            "Ada Lovelace",
		Track:           matcher.TrackB,
		CSBackground:    1,
		CodingAbility:   3,
		WorkExperience:  2,
		BusinessAbility: 1,
		ProjectRankings: []int{7, 8},
	}, built[0])
}

func TestMatchTeams_FindsFirstChoices(t *testing.T) {
	store := &mockStore{}
	cfg := testConfig()
	cfg.UseDiversity = boolPtr(false)

	result, err := MatchTeams(context.Background(), store, twoTeamLoader(), cfg, zap.NewNop(), MatchOptions{})
	require.NoError(t, err)

	require.NoError(t, result.State.Validate())
	assert.Equal(t, 4, result.State.Population())
	assert.InDelta(t, 2.0, result.Outcome.Energy, 1e-9)
	assert.InDelta(t, 2.0, result.Breakdown.Total, 1e-9)
	assert.Empty(t, result.Issues)

	require.Len(t, result.Assignments, 4)
	for _, a := range result.Assignments {
		assert.Equal(t, 1, a.Rank, "student %d should get their first choice", a.StudentID)
		assert.Equal(t, result.Run.ID, a.RunID)
	}
	assert.Equal(t, 10, result.Assignments[0].ProjectID)
	assert.Equal(t, "Acme: Widgets", result.Assignments[0].ProjectName)
	assert.Equal(t, "Student 1", result.Assignments[0].StudentName)

	assert.Equal(t, int64(7), result.Run.Seed)
	assert.Equal(t, 2, result.Run.TeamCount)
	assert.Equal(t, 4, result.Run.StudentCount)
	assert.Equal(t, 500, result.Run.Steps)
	assert.False(t, result.Run.Interrupted)

	assert.True(t, result.Saved)
	assert.Equal(t, 1, store.saveCall)
	assert.Len(t, store.assignments[result.Run.ID], 4)
}

func TestMatchTeams_WithDiversity(t *testing.T) {
	result, err := MatchTeams(context.Background(), nil, twoTeamLoader(), testConfig(), zap.NewNop(), MatchOptions{})
	require.NoError(t, err)

	require.NotNil(t, result.State.Model)
	require.Len(t, result.Breakdown.Terms, 3)
	assert.Equal(t, "Diversity", result.Breakdown.Terms[1].Criterion)
	assert.False(t, result.Saved)
	for _, p := range result.State.Active {
		assert.Equal(t, 1, p.TrackCount(matcher.TrackA))
		assert.Equal(t, 1, p.TrackCount(matcher.TrackB))
	}
}

func TestMatchTeams_SameSeedSameTeams(t *testing.T) {
	cfg := testConfig()

	first, err := MatchTeams(context.Background(), nil, twoTeamLoader(), cfg, zap.NewNop(), MatchOptions{})
	require.NoError(t, err)
	second, err := MatchTeams(context.Background(), nil, twoTeamLoader(), cfg, zap.NewNop(), MatchOptions{})
	require.NoError(t, err)

	assert.Equal(t, first.Outcome.Energy, second.Outcome.Energy)
	require.Len(t, second.Assignments, len(first.Assignments))
	for i := range first.Assignments {
		assert.Equal(t, first.Assignments[i].ProjectID, second.Assignments[i].ProjectID)
		assert.Equal(t, first.Assignments[i].StudentID, second.Assignments[i].StudentID)
	}
}

func TestMatchTeams_DryRunAndSeedOverride(t *testing.T) {
	store := &mockStore{}
	seed := int64(99)

	result, err := MatchTeams(context.Background(), store, twoTeamLoader(), testConfig(), zap.NewNop(), MatchOptions{DryRun: true, Seed: &seed})
	require.NoError(t, err)

	assert.False(t, result.Saved)
	assert.Equal(t, 0, store.saveCall)
	assert.Equal(t, int64(99), result.Run.Seed)
}

func TestMatchTeams_CancelledKeepsStartingTeams(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := &mockStore{}

	result, err := MatchTeams(ctx, store, twoTeamLoader(), testConfig(), zap.NewNop(), MatchOptions{})
	require.NoError(t, err)

	assert.True(t, result.Outcome.Interrupted)
	assert.True(t, result.Run.Interrupted)
	assert.Equal(t, 0, result.Run.Steps)
	assert.True(t, result.Saved, "an interrupted run is still saved")
}

func TestMatchTeams_Infeasible(t *testing.T) {
	cfg := testConfig()
	cfg.TeamComposition = config.TeamComposition{MinTrackA: 3, MinTrackB: 3}

	_, err := MatchTeams(context.Background(), nil, twoTeamLoader(), cfg, zap.NewNop(), MatchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFeasibility)
}

func TestMatchTeams_SingleTeamSkipsAnnealing(t *testing.T) {
	loader := twoTeamLoader()
	loader.students = loader.students[1:3]

	result, err := MatchTeams(context.Background(), nil, loader, testConfig(), zap.NewNop(), MatchOptions{})
	require.NoError(t, err)

	require.Len(t, result.State.Active, 1)
	assert.Equal(t, 0, result.Outcome.Steps)
	assert.Equal(t, result.Outcome.InitialEnergy, result.Outcome.Energy)
	assert.Len(t, result.Assignments, 2)
}

func TestMatchTeams_SaveError(t *testing.T) {
	store := &mockStore{saveErr: errors.New("connection refused")}

	_, err := MatchTeams(context.Background(), store, twoTeamLoader(), testConfig(), zap.NewNop(), MatchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save match run")
}

func TestMatchTeams_BadCostPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.PreferenceCost.Policy = "table"

	_, err := MatchTeams(context.Background(), nil, twoTeamLoader(), cfg, zap.NewNop(), MatchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build preference cost")
}

func TestSchedule_Overrides(t *testing.T) {
	cfg := testConfig()
	cfg.Annealing.Updates = 0

	s := schedule(cfg)

	assert.Equal(t, 500, s.Steps)
	assert.Equal(t, 10.0, s.MaxTemperature)
	assert.Equal(t, 0.01, s.MinTemperature)
	assert.Equal(t, matcher.DefaultSchedule().Updates, s.Updates)
}
