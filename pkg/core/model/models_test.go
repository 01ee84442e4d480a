package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrack_IsValid(t *testing.T) {
	assert.True(t, TrackMBA.IsValid())
	assert.True(t, TrackMEng.IsValid())
	assert.False(t, Track("PhD").IsValid())
	assert.False(t, Track("").IsValid())
}

func TestProject_DisplayName(t *testing.T) {
	assert.Equal(t, "Acme: Widget Tracker", Project{ID: 1, Name: "Widget Tracker", Company: "Acme"}.DisplayName())
	assert.Equal(t, "Widget Tracker", Project{ID: 1, Name: "Widget Tracker"}.DisplayName())
}

func TestStudent_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Student{FirstName: "Ada", LastName: "Lovelace"}.FullName())
}
