package domain

import (
	"encoding/json"
	"time"
)

// UnclaimedUser is the bucket key for sessions that carry no user
// identifier. It exists only for grouping and display; the API never
// returns it as a user value.
const UnclaimedUser = "(unclaimed)"

// Session is a single charging session record from the sessions API.
// Raw holds the original JSON object so exports and detail listings can
// pass fields the analyzer does not model through untouched.
type Session struct {
	SessionID        string  `json:"session_id"`
	User             *string `json:"user"`
	SessionKWH       float64 `json:"session_kwh"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
	SessionStartTime *int64  `json:"session_start_time"`

	Raw json.RawMessage `json:"-"`
}

// UserKey returns the grouping key for the session's user and whether the
// session is claimed.
func (s *Session) UserKey() (key string, claimed bool) {
	if s.User == nil || *s.User == "" {
		return UnclaimedUser, false
	}
	return *s.User, true
}

// StartDay returns the local calendar date the session started on.
// Reports false when session_start_time is absent.
func (s *Session) StartDay() (time.Time, bool) {
	if s.SessionStartTime == nil {
		return time.Time{}, false
	}
	t := time.UnixMilli(*s.SessionStartTime).Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), true
}
