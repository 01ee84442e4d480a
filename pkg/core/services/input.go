package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/team-matcher/internal/config"
	"github.com/jakechorley/team-matcher/pkg/clients/csvclient"
	"github.com/jakechorley/team-matcher/pkg/core/matcher"
	"github.com/jakechorley/team-matcher/pkg/core/model"
)

// InputLoader defines the loader operations needed to read a matching run's input
type InputLoader interface {
	ListStudents(path string, rankings int) ([]model.Student, error)
	ListProjects(path string) ([]model.Project, error)
}

// Input is the loaded and converted input of a matching run
type Input struct {
	Students []*matcher.Student

	// Projects holds every project in the mappings file, in file order
	Projects []*matcher.Project

	// Feasible holds the projects enough of each track ranked, most demanded first
	Feasible []*matcher.Project

	// ProjectNames maps every project ID to its display name
	ProjectNames map[int]string

	Quota    matcher.Quota
	Rankings int
}

// LoadInput reads the students and projects named in the config, checks that
// every ranking refers to a known project, and filters the feasible projects
func LoadInput(loader InputLoader, cfg *config.Config, logger *zap.Logger) (*Input, error) {
	quota := matcher.Quota{
		MinTrackA: cfg.TeamComposition.MinTrackA,
		MinTrackB: cfg.TeamComposition.MinTrackB,
	}

	logger.Debug("Loading projects", zap.String("path", cfg.Files.ProjectIDMappings))
	projects, err := loader.ListProjects(cfg.Files.ProjectIDMappings)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	logger.Debug("Loading students",
		zap.String("path", cfg.Files.Students),
		zap.Int("rankings", cfg.NumberProjectRankings))
	students, err := loader.ListStudents(cfg.Files.Students, cfg.NumberProjectRankings)
	if err != nil {
		return nil, fmt.Errorf("failed to load students: %w", err)
	}

	if err := csvclient.CheckRankings(students, projects); err != nil {
		return nil, err
	}

	input := &Input{
		Students:     BuildStudents(students),
		Projects:     BuildProjects(projects, quota),
		ProjectNames: make(map[int]string, len(projects)),
		Quota:        quota,
		Rankings:     cfg.NumberProjectRankings,
	}
	for _, p := range projects {
		input.ProjectNames[p.ID] = p.DisplayName()
	}

	input.Feasible = SortProjectsByDemand(
		FilterFeasibleProjects(input.Projects, input.Students, quota),
		input.Students,
	)

	logger.Info("Loaded input",
		zap.Int("students", len(input.Students)),
		zap.Int("projects", len(input.Projects)),
		zap.Int("feasible_projects", len(input.Feasible)))

	return input, nil
}

// BuildStudents converts loaded student records into matcher students
func BuildStudents(students []model.Student) []*matcher.Student {
	built := make([]*matcher.Student, len(students))
	for i, s := range students {
		track := matcher.TrackA
		if s.Track == model.TrackMEng {
			track = matcher.TrackB
		}

		built[i] = &matcher.Student{
			ID:              s.ID,
			Name:            s.FullName(),
			Track:           track,
			CSBackground:    s.CSBackground,
			CodingAbility:   s.CodingAbility,
			WorkExperience:  s.WorkExperience,
			BusinessAbility: s.BusinessAbility,
			ProjectRankings: append([]int(nil), s.Rankings...),
		}
	}
	return built
}

// BuildProjects converts loaded projects into matcher projects with empty rosters
func BuildProjects(projects []model.Project, quota matcher.Quota) []*matcher.Project {
	built := make([]*matcher.Project, len(projects))
	for i, p := range projects {
		built[i] = &matcher.Project{
			ID:    p.ID,
			Name:  p.DisplayName(),
			Quota: quota,
		}
	}
	return built
}
