package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"Idea", StatusIdea, true},
		{"idea", StatusIdea, true},
		{" APPLIED ", StatusApplied, true},
		{"tech-test", StatusTechTest, true},
		{"Tech Test", StatusTechTest, true},
		{"rejected", StatusRejected, true},
		{"Ghosted", Status("Ghosted"), false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStatus(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Tech Test", StatusTechTest.Label())
	assert.Equal(t, "Offer", StatusOffer.Label())
	assert.Equal(t, "Ghosted", Status("Ghosted").Label())
	assert.Equal(t, "tech-test", StatusTechTest.ClassKey())
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Status("idea").IsValid())
	assert.False(t, Status("").IsValid())
	assert.Len(t, Statuses(), 6)
}

func TestStatus_UnmarshalJSON(t *testing.T) {
	var app JobApplication
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"1","status":"interviewing"}`), &app))
	assert.Equal(t, StatusInterviewing, app.Status)

	require.NoError(t, json.Unmarshal([]byte(`{"_id":"1","status":"Ghosted"}`), &app))
	assert.Equal(t, Status("Ghosted"), app.Status)
	assert.False(t, app.Status.IsValid())
}
