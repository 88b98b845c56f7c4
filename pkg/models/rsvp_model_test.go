package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestsCount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want GuestsCount
	}{
		{"missing", `{}`, GuestsCount{}},
		{"null", `{"guestsCount":null}`, GuestsCount{}},
		{"number", `{"guestsCount":3}`, GuestsCount{Value: 3, Set: true}},
		{"zero", `{"guestsCount":0}`, GuestsCount{Value: 0, Set: true}},
		{"string", `{"guestsCount":"2"}`, GuestsCount{Value: 2, Set: true}},
		{"padded string", `{"guestsCount":" 5 "}`, GuestsCount{Value: 5, Set: true}},
		{"empty string", `{"guestsCount":""}`, GuestsCount{}},
		{"word", `{"guestsCount":"two"}`, GuestsCount{Invalid: true}},
		{"fraction", `{"guestsCount":1.5}`, GuestsCount{Invalid: true}},
		{"bool", `{"guestsCount":true}`, GuestsCount{Invalid: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sub RSVPSubmission
			require.NoError(t, json.Unmarshal([]byte(tt.body), &sub))
			assert.Equal(t, tt.want, sub.GuestsCount)
		})
	}
}

func TestGuestsCount_Or(t *testing.T) {
	assert.Equal(t, DefaultGuestsCount, GuestsCount{}.Or(DefaultGuestsCount))
	assert.Equal(t, DefaultGuestsCount, GuestsCount{Invalid: true}.Or(DefaultGuestsCount))
	assert.Equal(t, 0, GuestsCount{Set: true}.Or(DefaultGuestsCount))
	assert.Equal(t, 4, GuestsCount{Value: 4, Set: true}.Or(DefaultGuestsCount))
}

func TestAttendance_Valid(t *testing.T) {
	assert.True(t, AttendanceYes.Valid())
	assert.True(t, AttendanceNo.Valid())
	assert.False(t, Attendance("maybe").Valid())
	assert.False(t, Attendance("").Valid())
}
