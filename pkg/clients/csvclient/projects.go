package csvclient

import (
	"fmt"
	"strings"

	"github.com/jakechorley/team-matcher/pkg/core/model"
)

const projectFields = 3

// ListProjects loads the project ID mappings file: one row of ID, project
// name and company per project
func (c *Client) ListProjects(path string) ([]model.Project, error) {
	_, rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]int)
	projects := make([]model.Project, 0, len(rows))
	for i, row := range rows {
		line := i + 2

		if len(row) != projectFields {
			return nil, fmt.Errorf("%w: %s line %d has %d fields, expected %d", ErrInput, path, line, len(row), projectFields)
		}

		id, err := parseInt(row[0], "project ID")
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrInput, path, line, err)
		}
		if first, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %s line %d repeats project ID %d from line %d", ErrInput, path, line, id, first)
		}
		seen[id] = line

		projects = append(projects, model.Project{
			ID:      id,
			Name:    strings.TrimSpace(row[1]),
			Company: strings.TrimSpace(row[2]),
		})
	}

	if len(projects) == 0 {
		return nil, fmt.Errorf("%w: %s lists no projects", ErrInput, path)
	}

	return projects, nil
}
