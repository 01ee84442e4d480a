package matcher

import (
	"fmt"
	"slices"

	"github.com/jakechorley/team-matcher/pkg/core/diversity"
)

// Track is the degree programme a student is enrolled in
type Track int

const (
	TrackA Track = 0 // MBA
	TrackB Track = 1 // MEng
)

func (t Track) String() string {
	switch t {
	case TrackA:
		return "MBA"
	case TrackB:
		return "MEng"
	default:
		return fmt.Sprintf("Track(%d)", int(t))
	}
}

// Property indices of Student.NumericProperties
const (
	PropertyTrack = iota
	PropertyBusinessAbility
	PropertyCodingAbility
	PropertyWorkExperience
	PropertyCSBackground
	NumProperties
)

// CostFunc maps a preference rank (1-based, or the unranked sentinel) to the
// dissatisfaction of placing a student on that project. It must be
// non-decreasing in rank.
type CostFunc func(rank int) float64

// Student is a single student taking part in the match
type Student struct {
	ID   int
	Name string

	Track Track

	// Self-assessed attributes on a 0-4 scale (CSBackground is 0 or 1)
	CSBackground    int
	CodingAbility   int
	WorkExperience  int
	BusinessAbility int

	// ProjectRankings holds project IDs, most preferred first
	ProjectRankings []int
}

// Unranked returns the rank given to projects the student did not list.
// It is one past the number of rankings every student submits.
func (s *Student) Unranked() int {
	return len(s.ProjectRankings) + 1
}

// RankOf returns the 1-based position of projectID in the student's rankings,
// or Unranked() if the student did not rank it
func (s *Student) RankOf(projectID int) int {
	idx := slices.Index(s.ProjectRankings, projectID)
	if idx < 0 {
		return s.Unranked()
	}
	return idx + 1
}

// HasRanked returns true if the student listed the project at all
func (s *Student) HasRanked(projectID int) bool {
	return slices.Contains(s.ProjectRankings, projectID)
}

// NumericProperties returns the attribute vector used by the diversity model.
// Order follows the Property* constants.
func (s *Student) NumericProperties() []float64 {
	props := make([]float64, NumProperties)
	props[PropertyTrack] = float64(s.Track)
	props[PropertyBusinessAbility] = float64(s.BusinessAbility)
	props[PropertyCodingAbility] = float64(s.CodingAbility)
	props[PropertyWorkExperience] = float64(s.WorkExperience)
	props[PropertyCSBackground] = float64(s.CSBackground)
	return props
}

// Quota is the minimum number of students of each track a team needs
type Quota struct {
	MinTrackA int
	MinTrackB int
}

// TeamSize returns the combined minimum team size
func (q Quota) TeamSize() int {
	return q.MinTrackA + q.MinTrackB
}

// Project is a project that can host a team
type Project struct {
	ID    int
	Name  string
	Quota Quota

	// Roster holds the students currently on this project's team.
	// Order carries no meaning.
	Roster []*Student
}

// Size returns the number of students on the team
func (p *Project) Size() int {
	return len(p.Roster)
}

// Contains returns true if the student is on this project's team
func (p *Project) Contains(student *Student) bool {
	return slices.Contains(p.Roster, student)
}

// StudentIDs returns the IDs of the team members, in roster order
func (p *Project) StudentIDs() []int {
	ids := make([]int, len(p.Roster))
	for i, s := range p.Roster {
		ids[i] = s.ID
	}
	return ids
}

// TrackCount returns how many team members are on the given track
func (p *Project) TrackCount(track Track) int {
	count := 0
	for _, s := range p.Roster {
		if s.Track == track {
			count++
		}
	}
	return count
}

// CalculateDiversity scores the spread of the team's attributes under the
// given model. The roster must not be empty.
func (p *Project) CalculateDiversity(model *diversity.Model) (float64, error) {
	if len(p.Roster) == 0 {
		return 0, fmt.Errorf("%w: project %d has no students", ErrEmptyCollection, p.ID)
	}

	vectors := make([][]float64, len(p.Roster))
	for i, s := range p.Roster {
		vectors[i] = s.NumericProperties()
	}

	score, err := model.Score(vectors)
	if err != nil {
		return 0, fmt.Errorf("failed to score diversity of project %d: %w", p.ID, err)
	}
	return score, nil
}

// removeStudent removes the student from the roster, returning false if the
// student was not on it
func (p *Project) removeStudent(student *Student) bool {
	idx := slices.Index(p.Roster, student)
	if idx < 0 {
		return false
	}
	p.Roster = slices.Delete(p.Roster, idx, idx+1)
	return true
}

func (p *Project) addStudent(student *Student) {
	p.Roster = append(p.Roster, student)
}
