package csvclient

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jakechorley/team-matcher/pkg/core/model"
)

// Column layout of the student survey. Rankings follow the attribute
// columns, then first and last name.
const (
	columnID = iota
	columnTrack
	columnCSBackground
	columnCodingAbility
	columnWorkExperience

	// fixedColumns is the number of columns besides the rankings
	fixedColumns = 7
)

const businessAbilityHeader = "business_ability"

// MaxAbility is the highest self-assessed ability score
const MaxAbility = 4

// ListStudents loads the student survey. Each row holds the ID, track,
// CS background, coding ability and work experience, optionally business
// ability, then exactly rankings project IDs, then first and last name.
// The business ability column is only read when the header names it.
func (c *Client) ListStudents(path string, rankings int) ([]model.Student, error) {
	if rankings < 1 {
		return nil, fmt.Errorf("%w: number of rankings must be at least 1, got %d", ErrInput, rankings)
	}

	header, rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	layout, err := studentLayout(header, rankings)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	students := make([]model.Student, 0, len(rows))
	for i, row := range rows {
		// Line numbers count the header as line 1
		line := i + 2

		if len(row) != layout.width {
			return nil, fmt.Errorf("%w: %s line %d has %d fields, expected %d", ErrInput, path, line, len(row), layout.width)
		}

		student, err := parseStudent(row, layout)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrInput, path, line, err)
		}

		where := fmt.Sprintf("%s line %d", path, line)
		if first, seen := c.studentIDs[student.ID]; seen {
			return nil, fmt.Errorf("%w: student ID %d on %s was already loaded from %s", ErrInput, student.ID, where, first)
		}
		c.studentIDs[student.ID] = where

		students = append(students, student)
	}

	return students, nil
}

// CheckRankings verifies every ranked project exists in the catalogue
func CheckRankings(students []model.Student, projects []model.Project) error {
	known := make(map[int]bool, len(projects))
	for _, p := range projects {
		known[p.ID] = true
	}

	for _, s := range students {
		for _, id := range s.Rankings {
			if !known[id] {
				return fmt.Errorf("%w: student %d ranked unknown project %d", ErrInput, s.ID, id)
			}
		}
	}
	return nil
}

type layout struct {
	width       int
	hasBusiness bool
	rankings    int
	firstRank   int
}

func studentLayout(header []string, rankings int) (layout, error) {
	l := layout{
		width:     rankings + fixedColumns,
		rankings:  rankings,
		firstRank: columnWorkExperience + 1,
	}

	switch len(header) {
	case l.width:
	case l.width + 1:
		if normalizeHeader(header[l.firstRank]) != businessAbilityHeader {
			return layout{}, fmt.Errorf("%w: header has %d columns but column %d is %q, not %s",
				ErrInput, len(header), l.firstRank+1, header[l.firstRank], businessAbilityHeader)
		}
		l.hasBusiness = true
		l.width++
		l.firstRank++
	default:
		return layout{}, fmt.Errorf("%w: header has %d columns, expected %d for %d rankings",
			ErrInput, len(header), l.width, rankings)
	}

	return l, nil
}

func parseStudent(row []string, l layout) (model.Student, error) {
	var s model.Student
	var err error

	if s.ID, err = parseInt(row[columnID], "ID"); err != nil {
		return s, err
	}
	if s.Track, err = parseTrack(row[columnTrack]); err != nil {
		return s, err
	}
	if s.CSBackground, err = parseRange(row[columnCSBackground], "CS background", 1); err != nil {
		return s, err
	}
	if s.CodingAbility, err = parseRange(row[columnCodingAbility], "coding ability", MaxAbility); err != nil {
		return s, err
	}
	if s.WorkExperience, err = parseRange(row[columnWorkExperience], "work experience", MaxAbility); err != nil {
		return s, err
	}
	if l.hasBusiness {
		if s.BusinessAbility, err = parseRange(row[columnWorkExperience+1], "business ability", MaxAbility); err != nil {
			return s, err
		}
	}

	s.Rankings = make([]int, 0, l.rankings)
	for i := 0; i < l.rankings; i++ {
		id, err := parseInt(row[l.firstRank+i], fmt.Sprintf("ranking %d", i+1))
		if err != nil {
			return s, err
		}
		if slices.Contains(s.Rankings, id) {
			return s, fmt.Errorf("project %d is ranked more than once", id)
		}
		s.Rankings = append(s.Rankings, id)
	}

	s.FirstName = strings.TrimSpace(row[l.firstRank+l.rankings])
	s.LastName = strings.TrimSpace(row[l.firstRank+l.rankings+1])
	if s.FirstName == "" && s.LastName == "" {
		return s, fmt.Errorf("student %d has no name", s.ID)
	}

	return s, nil
}

func parseInt(field, name string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a whole number", name, field)
	}
	return value, nil
}

func parseRange(field, name string, upper int) (int, error) {
	value, err := parseInt(field, name)
	if err != nil {
		return 0, err
	}
	if value < 0 || value > upper {
		return 0, fmt.Errorf("%s must be between 0 and %d, got %d", name, upper, value)
	}
	return value, nil
}

// parseTrack accepts the track name or its numeric code (0 for MBA, 1 for MEng)
func parseTrack(field string) (model.Track, error) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "mba", "0":
		return model.TrackMBA, nil
	case "meng", "1":
		return model.TrackMEng, nil
	default:
		return "", fmt.Errorf("unknown track %q", field)
	}
}
