package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// RSVPResponse is one stored guest response. JSON keys follow the column names.
type RSVPResponse struct {
	ID                  int            `json:"id" db:"id"`
	Name                string         `json:"name" db:"name"`
	Email               string         `json:"email" db:"email"`
	Phone               string         `json:"phone" db:"phone"`
	Attendance          Attendance     `json:"attendance" db:"attendance"`
	GuestsCount         int            `json:"guests_count" db:"guests_count"`
	DietaryRestrictions pq.StringArray `json:"dietary_restrictions" db:"dietary_restrictions"`
	OtherDietary        string         `json:"other_dietary" db:"other_dietary"`
	Message             string         `json:"message" db:"message"`
	CreatedAt           *time.Time     `json:"created_at" db:"created_at"`
}

type Attendance string

const (
	AttendanceYes Attendance = "yes"
	AttendanceNo  Attendance = "no"
)

func (a Attendance) Valid() bool {
	return a == AttendanceYes || a == AttendanceNo
}

// RSVPSubmission is the POST body sent by the invitation page.
type RSVPSubmission struct {
	Name                string      `json:"name"`
	Email               string      `json:"email"`
	Phone               string      `json:"phone"`
	Attendance          string      `json:"attendance"`
	GuestsCount         GuestsCount `json:"guestsCount"`
	DietaryRestrictions []string    `json:"dietaryRestrictions"`
	OtherDietary        string      `json:"otherDietary"`
	Message             string      `json:"message"`
}

// DefaultGuestsCount is stored when the submission leaves guestsCount out.
const DefaultGuestsCount = 1

// GuestsCount is guestsCount as sent by the page: a JSON number or a numeric
// string taken from a select. null, "" and a missing key leave it unset.
// Anything else decodes without error and is reported by Invalid.
type GuestsCount struct {
	Value   int
	Set     bool
	Invalid bool
}

func (g *GuestsCount) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	*g = GuestsCount{}
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			g.Invalid = true
			return nil
		}
		g.Value, g.Set = n, true
		return nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		g.Invalid = true
		return nil
	}
	g.Value, g.Set = n, true
	return nil
}

// Or returns the decoded count, or def when none was sent.
func (g GuestsCount) Or(def int) int {
	if g.Set {
		return g.Value
	}
	return def
}
