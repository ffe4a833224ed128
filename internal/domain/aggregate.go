package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Percent returns n as a percentage of total, 0 when total is zero.
func Percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// DailyBucket is one calendar day's classification counts.
type DailyBucket struct {
	Date     time.Time
	Total    int
	Empty    int
	Micro    int
	EmptyPct float64
	MicroPct float64
}

// DailyBreakdown is the per-day grouping of a session list, in ascending
// date order. Sessions without a session_start_time cannot be bucketed
// and are counted in Skipped instead of faulting the run.
type DailyBreakdown struct {
	Buckets []DailyBucket
	Skipped int
}

// GroupByDay buckets sessions by the local calendar date they started on.
func GroupByDay(sessions []Session, threshold float64) DailyBreakdown {
	byDay := make(map[time.Time]*DailyBucket)
	var skipped int

	for i := range sessions {
		day, ok := sessions[i].StartDay()
		if !ok {
			skipped++
			continue
		}
		b := byDay[day]
		if b == nil {
			b = &DailyBucket{Date: day}
			byDay[day] = b
		}
		b.Total++
		switch Classify(sessions[i], threshold) {
		case ClassEmpty:
			b.Empty++
		case ClassMicro:
			b.Micro++
		}
	}

	out := DailyBreakdown{
		Buckets: make([]DailyBucket, 0, len(byDay)),
		Skipped: skipped,
	}
	for _, b := range byDay {
		b.EmptyPct = Percent(b.Empty, b.Total)
		b.MicroPct = Percent(b.Micro, b.Total)
		out.Buckets = append(out.Buckets, *b)
	}
	sort.Slice(out.Buckets, func(i, j int) bool {
		return out.Buckets[i].Date.Before(out.Buckets[j].Date)
	})
	return out
}

// UserBucket is one user's sessions with classification counts.
type UserBucket struct {
	User      string
	Unclaimed bool
	Total     int
	Empty     int
	Micro     int
	Normal    int
	NormalPct float64
	Sessions  []Session
}

// GroupByUser buckets sessions by user in ascending key order, with the
// unclaimed bucket always last.
func GroupByUser(sessions []Session, threshold float64) []UserBucket {
	byUser := make(map[string]*UserBucket)

	for i := range sessions {
		key, claimed := sessions[i].UserKey()
		b := byUser[key]
		if b == nil {
			b = &UserBucket{User: key, Unclaimed: !claimed}
			byUser[key] = b
		}
		b.Total++
		switch Classify(sessions[i], threshold) {
		case ClassEmpty:
			b.Empty++
		case ClassMicro:
			b.Micro++
		default:
			b.Normal++
		}
		b.Sessions = append(b.Sessions, sessions[i])
	}

	out := make([]UserBucket, 0, len(byUser))
	for _, b := range byUser {
		b.NormalPct = Percent(b.Normal, b.Total)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Unclaimed != out[j].Unclaimed {
			return out[j].Unclaimed
		}
		return out[i].User < out[j].User
	})
	return out
}

// Summary is the whole-dataset classification rollup.
type Summary struct {
	Total       int
	Empty       int
	Micro       int
	Combined    int
	Normal      int
	EmptyPct    float64
	MicroPct    float64
	CombinedPct float64
	NormalPct   float64
}

// Summarize counts every class over the whole session list. Combined is
// empty plus micro; normal is the remainder.
func Summarize(sessions []Session, threshold float64) Summary {
	s := Summary{Total: len(sessions)}
	for i := range sessions {
		switch Classify(sessions[i], threshold) {
		case ClassEmpty:
			s.Empty++
		case ClassMicro:
			s.Micro++
		}
	}
	s.Combined = s.Empty + s.Micro
	s.Normal = s.Total - s.Combined
	s.EmptyPct = Percent(s.Empty, s.Total)
	s.MicroPct = Percent(s.Micro, s.Total)
	s.CombinedPct = Percent(s.Combined, s.Total)
	s.NormalPct = Percent(s.Normal, s.Total)
	return s
}

// UserNotFoundError reports a requested user missing from the dataset,
// carrying the users that are present for the help message.
type UserNotFoundError struct {
	User  string
	Known []string
}

func (e *UserNotFoundError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("user %q not found (no users in result set)", e.User)
	}
	return fmt.Sprintf("user %q not found; known users: %s", e.User, strings.Join(e.Known, ", "))
}

// FindUser returns the bucket for the requested user, or a
// *UserNotFoundError listing the known claimed users in ascending order.
func FindUser(buckets []UserBucket, user string) (UserBucket, error) {
	known := make([]string, 0, len(buckets))
	var found *UserBucket
	for i := range buckets {
		if buckets[i].User == user {
			found = &buckets[i]
		}
		if !buckets[i].Unclaimed {
			known = append(known, buckets[i].User)
		}
	}
	if found != nil {
		return *found, nil
	}
	sort.Strings(known)
	return UserBucket{}, &UserNotFoundError{User: user, Known: known}
}
