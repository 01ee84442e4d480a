package csvclient

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/team-matcher/pkg/core/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const surveyThreeRankings = `id,track,cs_background,coding_ability,work_experience,rank_1,rank_2,rank_3,first_name,last_name
1,MBA,0,1,3,10,20,30,Ada,Lovelace
2,MEng,1,4,0,20,10,40,Alan,Turing
3,0,0,2,4,30,40,10,Grace,Hopper
4,1,1,3,1,40,30,20,Edsger,Dijkstra
`

func TestListStudents_SevenPlusRankings(t *testing.T) {
	path := writeFile(t, "students.csv", surveyThreeRankings)
	client := NewClient()

	students, err := client.ListStudents(path, 3)
	require.NoError(t, err)
	require.Len(t, students, 4)

	assert.Equal(t, model.Student{
		ID:             1,
		Track:          model.TrackMBA,
		CodingAbility:  1,
		WorkExperience: 3,
		Rankings:       []int{10, 20, 30},
		FirstName:      "Ada",
		LastName:       "Lovelace",
	}, students[0])
	assert.Equal(t, model.TrackMEng, students[1].Track)
	assert.Equal(t, 1, students[1].CSBackground)
	assert.Equal(t, model.TrackMBA, students[2].Track, "Numeric track 0 is MBA")
	assert.Equal(t, model.TrackMEng, students[3].Track, "Numeric track 1 is MEng")
	assert.Equal(t, 0, students[3].BusinessAbility, "Business ability defaults to zero")
}

func TestListStudents_WithBusinessAbility(t *testing.T) {
	path := writeFile(t, "students.csv", `id,track,cs_background,coding_ability,work_experience,Business Ability,rank_1,rank_2,first_name,last_name
7,MBA,0,1,3,4,10,20,Ada,Lovelace
8,MEng,1,4,0,2,20,10,Alan,Turing
`)

	students, err := NewClient().ListStudents(path, 2)
	require.NoError(t, err)
	require.Len(t, students, 2)

	assert.Equal(t, 4, students[0].BusinessAbility)
	assert.Equal(t, []int{10, 20}, students[0].Rankings)
	assert.Equal(t, "Ada", students[0].FirstName)
	assert.Equal(t, 2, students[1].BusinessAbility)
}

func TestListStudents_Errors(t *testing.T) {
	header := "id,track,cs_background,coding_ability,work_experience,rank_1,rank_2,first_name,last_name\n"

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "empty file", content: "", wantErr: "is empty"},
		{name: "wrong header width", content: "id,track,first_name\n", wantErr: "header has 3 columns, expected 9"},
		{name: "extra column is not business ability", content: "id,track,cs_background,coding_ability,work_experience,gpa,rank_1,rank_2,first_name,last_name\n", wantErr: "not business_ability"},
		{name: "short row", content: header + "1,MBA,0,1,3,10,20,Ada\n", wantErr: "line 2 has 8 fields, expected 9"},
		{name: "bad ID", content: header + "x,MBA,0,1,3,10,20,Ada,Lovelace\n", wantErr: "ID \"x\" is not a whole number"},
		{name: "unknown track", content: header + "1,PhD,0,1,3,10,20,Ada,Lovelace\n", wantErr: "unknown track \"PhD\""},
		{name: "ability out of range", content: header + "1,MBA,0,5,3,10,20,Ada,Lovelace\n", wantErr: "coding ability must be between 0 and 4, got 5"},
		{name: "cs background out of range", content: header + "1,MBA,2,1,3,10,20,Ada,Lovelace\n", wantErr: "CS background must be between 0 and 1"},
		{name: "repeated ranking", content: header + "1,MBA,0,1,3,10,10,Ada,Lovelace\n", wantErr: "project 10 is ranked more than once"},
		{name: "missing name", content: header + "1,MBA,0,1,3,10,20,,\n", wantErr: "has no name"},
		{name: "duplicate ID", content: header + "1,MBA,0,1,3,10,20,Ada,Lovelace\n1,MEng,0,1,3,10,20,Alan,Turing\n", wantErr: "student ID 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "students.csv", tt.content)

			_, err := NewClient().ListStudents(path, 2)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInput)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestListStudents_MissingFile(t *testing.T) {
	client := NewClient()

	_, err := client.ListStudents(filepath.Join(t.TempDir(), "missing.csv"), 3)
	assert.ErrorIs(t, err, ErrInput)

	_, err = client.ListStudents("", 3)
	assert.ErrorIs(t, err, ErrInput)
	assert.Contains(t, err.Error(), "no file name given")

	_, err = client.ListStudents("students.csv", 0)
	assert.ErrorIs(t, err, ErrInput)
}

func TestListStudents_RegistrySpansFiles(t *testing.T) {
	client := NewClient()
	first := writeFile(t, "first.csv", surveyThreeRankings)
	second := writeFile(t, "second.csv", surveyThreeRankings)

	_, err := client.ListStudents(first, 3)
	require.NoError(t, err)

	_, err = client.ListStudents(second, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInput)
	assert.Contains(t, err.Error(), "was already loaded from "+first+" line 2")

	// Forgetting the registry allows a reload
	client.Forget()
	_, err = client.ListStudents(second, 3)
	assert.NoError(t, err)
}

func TestListStudents_SkipsBlankLines(t *testing.T) {
	path := writeFile(t, "students.csv", surveyThreeRankings+",,,,,,,,,\n\n")

	students, err := NewClient().ListStudents(path, 3)
	require.NoError(t, err)
	assert.Len(t, students, 4)
}

func TestCheckRankings(t *testing.T) {
	projects := []model.Project{{ID: 10}, {ID: 20}}

	assert.NoError(t, CheckRankings([]model.Student{{ID: 1, Rankings: []int{10, 20}}}, projects))

	err := CheckRankings([]model.Student{{ID: 1, Rankings: []int{10, 99}}}, projects)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInput)
	assert.Contains(t, err.Error(), "student 1 ranked unknown project 99")
}
