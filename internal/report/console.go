package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pfxtools/seshis/internal/domain"
	"github.com/pfxtools/seshis/internal/util"
)

// WriteFetchCounts prints the total-vs-valid line every analysis starts with.
func WriteFetchCounts(w io.Writer, valid, total int) {
	fmt.Fprintf(w, "\nTotal sessions returned: %d (filtered from %d)\n", valid, total)
}

// WriteClassLine prints the headline count for one class of session.
func WriteClassLine(w io.Writer, class domain.Class, threshold float64, count, total int) {
	pct := util.FormatPercent(domain.Percent(count, total))
	switch class {
	case domain.ClassEmpty:
		fmt.Fprintf(w, "Sessions with 0 kWh delivered: %d (%s of total)\n", count, pct)
	case domain.ClassMicro:
		fmt.Fprintf(w, "Microsessions (0 < kWh < %g): %d (%s of total)\n", threshold, count, pct)
	default:
		fmt.Fprintf(w, "Normal sessions: %d (%s of total)\n", count, pct)
	}
}

// WriteDaily prints the per-day breakdown table for one class of session.
func WriteDaily(w io.Writer, class domain.Class, d domain.DailyBreakdown) {
	fmt.Fprintf(w, "\nDaily breakdown:\n")
	if len(d.Buckets) == 0 {
		fmt.Fprintln(w, "No sessions with a start time in this range")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	label := "EMPTY"
	if class == domain.ClassMicro {
		label = "MICRO"
	}
	fmt.Fprintf(tw, "DATE\t%s\tTOTAL\tPCT\n", label)
	fmt.Fprintf(tw, "----\t%s\t-----\t---\n", dashes(label))

	for _, b := range d.Buckets {
		count, pct := b.Empty, b.EmptyPct
		if class == domain.ClassMicro {
			count, pct = b.Micro, b.MicroPct
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n",
			util.FormatDateISO(b.Date), count, b.Total, util.FormatPercent(pct))
	}
	tw.Flush()

	if d.Skipped > 0 {
		fmt.Fprintf(w, "\nSkipped %d session(s) with no start time\n", d.Skipped)
	}
}

// WriteUsers prints the per-user breakdown table, unclaimed bucket last.
func WriteUsers(w io.Writer, buckets []domain.UserBucket) {
	if len(buckets) == 0 {
		fmt.Fprintln(w, "No sessions found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tTOTAL\tEMPTY\tMICRO\tNORMAL\tNORMAL %")
	fmt.Fprintln(tw, "----\t-----\t-----\t-----\t------\t--------")
	for _, b := range buckets {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\n",
			b.User, b.Total, b.Empty, b.Micro, b.Normal, util.FormatPercent(b.NormalPct))
	}
	tw.Flush()

	fmt.Fprintf(w, "\nShowing %d user(s)\n", len(buckets))
}

// WriteSummary prints the whole-dataset combined rollup.
func WriteSummary(w io.Writer, s domain.Summary, threshold float64) {
	fmt.Fprintf(w, "\nCombined summary\n")
	fmt.Fprintf(w, "Total sessions analyzed: %d\n", s.Total)
	fmt.Fprintf(w, "Empty sessions (0 kWh): %d (%s)\n", s.Empty, util.FormatPercent(s.EmptyPct))
	fmt.Fprintf(w, "Microsessions (0 < kWh < %g): %d (%s)\n", threshold, s.Micro, util.FormatPercent(s.MicroPct))
	fmt.Fprintf(w, "Combined (empty + micro): %d (%s)\n", s.Combined, util.FormatPercent(s.CombinedPct))
	fmt.Fprintf(w, "Normal sessions (>= %g kWh): %d (%s)\n", threshold, s.Normal, util.FormatPercent(s.NormalPct))
}

// WriteSessionDetails prints one row per session with its derived metrics.
func WriteSessionDetails(w io.Writer, sessions []domain.Session, calc domain.Calculator) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions to show")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tUSER\tKWH\tDURATION\tAVG AMPS\tTIER")
	fmt.Fprintln(tw, "-------\t----\t---\t--------\t--------\t----")
	for i := range sessions {
		s := &sessions[i]
		m := calc.Compute(*s)
		user, _ := s.UserKey()
		amps := "N/A"
		if m.Tier != domain.TierUnknown {
			amps = fmt.Sprintf("%.2f", m.AvgAmps)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.3f\t%s\t%s\t%s\n",
			util.Truncate(s.SessionID, 16), user, s.SessionKWH, m.DurationLabel, amps, m.Tier)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nShowing %d session(s)\n", len(sessions))
}

func dashes(s string) string {
	out := make([]byte, len(s))
	for i := range out {
		out[i] = '-'
	}
	return string(out)
}
