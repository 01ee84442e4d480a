package matcher

import (
	"fmt"
	"math/rand"
)

// randomIndex returns a uniform index into a collection of length n
func randomIndex(rng *rand.Rand, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: cannot pick from %d items", ErrEmptyCollection, n)
	}
	if n == 1 {
		return 0, nil
	}
	return rng.Intn(n), nil
}

// randomProject picks a project uniformly
func randomProject(rng *rand.Rand, projects []*Project) (*Project, int, error) {
	idx, err := randomIndex(rng, len(projects))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to pick project: %w", err)
	}
	return projects[idx], idx, nil
}

// randomStudent picks a team member uniformly
func randomStudent(rng *rand.Rand, project *Project) (*Student, error) {
	idx, err := randomIndex(rng, len(project.Roster))
	if err != nil {
		return nil, fmt.Errorf("failed to pick student from project %d: %w", project.ID, err)
	}
	return project.Roster[idx], nil
}
