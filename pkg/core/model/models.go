package model

import "fmt"

type Track string

const (
	TrackMBA  Track = "MBA"
	TrackMEng Track = "MEng"
)

func (t Track) IsValid() bool {
	return t == TrackMBA || t == TrackMEng
}

// Student represents one row of the student survey
type Student struct {
	ID              int
	Track           Track
	CSBackground    int // 1 if the undergraduate degree was computer science
	CodingAbility   int // Self-assessed, 0-4
	WorkExperience  int // Self-assessed, 0-4
	BusinessAbility int // Self-assessed, 0-4. Zero when the survey did not ask
	Rankings        []int
	FirstName       string
	LastName        string
}

// FullName returns the student's first and last name
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Project represents a project from the project ID mappings file
type Project struct {
	ID      int
	Name    string
	Company string
}

// DisplayName returns the project as "Company: Name"
func (p Project) DisplayName() string {
	if p.Company == "" {
		return p.Name
	}
	return fmt.Sprintf("%s: %s", p.Company, p.Name)
}
