package csvclient

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrInput is returned for any problem with an input file
var ErrInput = errors.New("invalid input")

// Client reads the survey and project mapping files.
// It remembers every student ID it has loaded so a student cannot appear
// twice, even across files.
type Client struct {
	studentIDs map[int]string
}

// NewClient creates a new CSV client with an empty ID registry
func NewClient() *Client {
	return &Client{
		studentIDs: make(map[int]string),
	}
}

// Forget clears the ID registry so the same files can be loaded again
func (c *Client) Forget() {
	c.studentIDs = make(map[int]string)
}

// readRows reads a CSV file and returns its header and data rows.
// Rows may have any number of fields; callers check the count.
func readRows(path string) ([]string, [][]string, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("%w: no file name given", ErrInput)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to open %s: %v", ErrInput, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%w: %s is empty", ErrInput, path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read header of %s: %v", ErrInput, path, err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to read %s: %v", ErrInput, path, err)
		}

		// Skip blank lines left by spreadsheet exports
		if isBlank(record) {
			continue
		}
		rows = append(rows, record)
	}

	return header, rows, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// normalizeHeader turns "Business Ability" or "business-ability" into "business_ability"
func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(name)
}
