package services

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jakechorley/team-matcher/pkg/core/matcher"
)

// ErrFeasibility is returned when the input cannot produce a valid set of teams
var ErrFeasibility = errors.New("infeasible input")

// ProjectDemand counts the students who ranked a project, by track
type ProjectDemand struct {
	ProjectID int
	Name      string
	TrackA    int
	TrackB    int
	Feasible  bool
}

// Total returns the number of students who ranked the project
func (d ProjectDemand) Total() int {
	return d.TrackA + d.TrackB
}

// DemandBucket is one bar of the demand histogram: how many projects were
// ranked by exactly Votes students
type DemandBucket struct {
	Votes    int
	Projects int
}

// FilterFeasibleProjects keeps the projects ranked by at least the quota's
// minimum of each track
func FilterFeasibleProjects(projects []*matcher.Project, students []*matcher.Student, quota matcher.Quota) []*matcher.Project {
	var feasible []*matcher.Project
	for _, p := range projects {
		d := demandFor(p, students)
		if d.TrackA >= quota.MinTrackA && d.TrackB >= quota.MinTrackB {
			feasible = append(feasible, p)
		}
	}
	return feasible
}

// CheckInput rejects inputs the optimiser cannot work with.
// feasible must already be filtered.
func CheckInput(students []*matcher.Student, feasible []*matcher.Project, quota matcher.Quota) error {
	if len(feasible) == 0 {
		return fmt.Errorf("%w: there are no feasible projects", ErrFeasibility)
	}
	if len(students) == 0 {
		return fmt.Errorf("%w: there are no students", ErrFeasibility)
	}

	seen := make(map[int]matcher.Track, len(students))
	for _, s := range students {
		if track, ok := seen[s.ID]; ok {
			return fmt.Errorf("%w: student ID %d appears as both %s and %s", ErrFeasibility, s.ID, track, s.Track)
		}
		seen[s.ID] = s.Track
	}

	if quota.TeamSize() == 0 {
		return fmt.Errorf("%w: team size cannot be 0", ErrFeasibility)
	}

	teams := matcher.TeamCount(students, quota)
	if teams == 0 {
		return fmt.Errorf("%w: team size is too large for the given students", ErrFeasibility)
	}
	if teams > len(feasible) {
		return fmt.Errorf("%w: students fill %d teams but only %d projects are feasible", ErrFeasibility, teams, len(feasible))
	}

	return nil
}

// SortProjectsByDemand returns the projects ordered from most to least ranked.
// Ties keep their input order.
func SortProjectsByDemand(projects []*matcher.Project, students []*matcher.Student) []*matcher.Project {
	votes := make(map[int]int, len(projects))
	for _, p := range projects {
		votes[p.ID] = demandFor(p, students).Total()
	}

	sorted := slices.Clone(projects)
	slices.SortStableFunc(sorted, func(a, b *matcher.Project) int {
		return votes[b.ID] - votes[a.ID]
	})
	return sorted
}

// Demand returns the per-track demand of every project, most demanded first
func Demand(projects []*matcher.Project, students []*matcher.Student, quota matcher.Quota) []ProjectDemand {
	demand := make([]ProjectDemand, len(projects))
	for i, p := range SortProjectsByDemand(projects, students) {
		d := demandFor(p, students)
		d.Feasible = d.TrackA >= quota.MinTrackA && d.TrackB >= quota.MinTrackB
		demand[i] = d
	}
	return demand
}

// DemandHistogram groups projects by how many students ranked them,
// highest vote count first
func DemandHistogram(projects []*matcher.Project, students []*matcher.Student) []DemandBucket {
	counts := make(map[int]int)
	for _, p := range projects {
		counts[demandFor(p, students).Total()]++
	}

	buckets := make([]DemandBucket, 0, len(counts))
	for votes, n := range counts {
		buckets = append(buckets, DemandBucket{Votes: votes, Projects: n})
	}
	slices.SortFunc(buckets, func(a, b DemandBucket) int {
		return b.Votes - a.Votes
	})
	return buckets
}

func demandFor(project *matcher.Project, students []*matcher.Student) ProjectDemand {
	d := ProjectDemand{ProjectID: project.ID, Name: project.Name}
	for _, s := range students {
		if !s.HasRanked(project.ID) {
			continue
		}
		if s.Track == matcher.TrackA {
			d.TrackA++
		} else {
			d.TrackB++
		}
	}
	return d
}
