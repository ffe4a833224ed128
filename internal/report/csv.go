package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pfxtools/seshis/internal/domain"
	"github.com/pfxtools/seshis/internal/util"
)

// WriteSessionsCSV writes one row per session with its class and derived
// metrics. Degraded metrics export as 0 in the numeric columns and N/A in
// the label columns.
func WriteSessionsCSV(w io.Writer, sessions []domain.Session, calc domain.Calculator, threshold float64) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"session_id", "user", "date", "session_kwh", "class",
		"duration_seconds", "duration", "avg_power_w", "avg_amps", "tier",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range sessions {
		s := &sessions[i]
		m := calc.Compute(*s)
		user, _ := s.UserKey()

		date := ""
		if day, ok := s.StartDay(); ok {
			date = util.FormatDateISO(day)
		}

		durationSeconds := 0.0
		if m.DurationKnown {
			durationSeconds = m.Duration.Seconds()
		}

		row := []string{
			s.SessionID,
			user,
			date,
			fmt.Sprintf("%.3f", s.SessionKWH),
			domain.Classify(*s, threshold).String(),
			fmt.Sprintf("%.0f", durationSeconds),
			m.DurationLabel,
			fmt.Sprintf("%.1f", m.AvgPowerW),
			fmt.Sprintf("%.2f", m.AvgAmps),
			m.Tier.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteUsersCSV writes the per-user aggregate rows.
func WriteUsersCSV(w io.Writer, buckets []domain.UserBucket) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"user", "total", "empty", "micro", "normal", "normal_pct"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, b := range buckets {
		row := []string{
			b.User,
			fmt.Sprintf("%d", b.Total),
			fmt.Sprintf("%d", b.Empty),
			fmt.Sprintf("%d", b.Micro),
			fmt.Sprintf("%d", b.Normal),
			fmt.Sprintf("%.1f", b.NormalPct),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
