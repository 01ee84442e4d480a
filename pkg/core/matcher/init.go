package matcher

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/jakechorley/team-matcher/pkg/core/diversity"
)

// InitConfig contains the data needed to build a starting assignment
type InitConfig struct {
	// Students to place on teams
	Students []*Student

	// Projects that passed the feasibility filter, most demanded first.
	// The first TeamCount become active, the rest form the feasible pool.
	Projects []*Project

	// Quota is the per-team minimum of each track
	Quota Quota

	Model *diversity.Model
	Rand  *rand.Rand
}

// TeamCount returns how many teams the students can fill while meeting the
// quota. Each track with a positive minimum limits the count.
func TeamCount(students []*Student, quota Quota) int {
	trackA, trackB := splitByTrack(students)

	teams := -1
	if quota.MinTrackA > 0 {
		teams = len(trackA) / quota.MinTrackA
	}
	if quota.MinTrackB > 0 {
		fromB := len(trackB) / quota.MinTrackB
		if teams < 0 || fromB < teams {
			teams = fromB
		}
	}

	return max(teams, 0)
}

// InitState builds a starting assignment.
//
// Steps:
//  1. The most demanded projects become active, one per team
//  2. Each track is shuffled and dealt round-robin until every team has its minimum
//  3. Remaining students are shuffled and each joins the currently smallest team
func InitState(cfg InitConfig) (*State, error) {
	teams := TeamCount(cfg.Students, cfg.Quota)
	if teams == 0 {
		return nil, fmt.Errorf("%w: not enough students to form a team with quota %+v", ErrEmptyCollection, cfg.Quota)
	}
	if teams > len(cfg.Projects) {
		return nil, fmt.Errorf("need %d teams but only %d feasible projects", teams, len(cfg.Projects))
	}

	active := slices.Clone(cfg.Projects[:teams])
	feasible := slices.Clone(cfg.Projects[teams:])
	for _, p := range cfg.Projects {
		p.Roster = nil
	}

	trackA, trackB := splitByTrack(cfg.Students)
	cfg.Rand.Shuffle(len(trackA), func(i, j int) { trackA[i], trackA[j] = trackA[j], trackA[i] })
	cfg.Rand.Shuffle(len(trackB), func(i, j int) { trackB[i], trackB[j] = trackB[j], trackB[i] })

	// Step 2: meet the quota
	dealt := teams * cfg.Quota.MinTrackA
	for i := 0; i < dealt; i++ {
		active[i%teams].addStudent(trackA[i])
	}
	leftover := slices.Clone(trackA[dealt:])

	dealt = teams * cfg.Quota.MinTrackB
	for i := 0; i < dealt; i++ {
		active[i%teams].addStudent(trackB[i])
	}
	leftover = append(leftover, trackB[dealt:]...)

	// Step 3: even out team sizes
	cfg.Rand.Shuffle(len(leftover), func(i, j int) { leftover[i], leftover[j] = leftover[j], leftover[i] })
	for _, student := range leftover {
		smallest := active[0]
		for _, p := range active[1:] {
			if p.Size() < smallest.Size() {
				smallest = p
			}
		}
		smallest.addStudent(student)
	}

	return NewState(active, cfg.Model, feasible)
}

func splitByTrack(students []*Student) (trackA, trackB []*Student) {
	for _, s := range students {
		if s.Track == TrackA {
			trackA = append(trackA, s)
		} else {
			trackB = append(trackB, s)
		}
	}
	return trackA, trackB
}
