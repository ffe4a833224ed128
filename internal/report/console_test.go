package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pfxtools/seshis/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func testSessions() []domain.Session {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	return []domain.Session{
		{
			SessionID:        "sess-normal",
			User:             ptr("alice"),
			SessionKWH:       2,
			CreatedAt:        "2025-03-01T08:00:00Z",
			UpdatedAt:        "2025-03-01T09:00:00Z",
			SessionStartTime: ptr(start),
		},
		{
			SessionID:        "sess-empty",
			User:             nil,
			SessionKWH:       0,
			SessionStartTime: ptr(start),
		},
	}
}

func TestWriteDaily(t *testing.T) {
	d := domain.GroupByDay(testSessions(), 1.0)

	var buf bytes.Buffer
	WriteDaily(&buf, domain.ClassEmpty, d)
	out := buf.String()

	if !strings.Contains(out, "EMPTY") {
		t.Errorf("missing EMPTY column header:\n%s", out)
	}
	if !strings.Contains(out, "50.0%") {
		t.Errorf("expected 50.0%% for one empty of two:\n%s", out)
	}
	if strings.Contains(out, "Skipped") {
		t.Errorf("no skipped line expected:\n%s", out)
	}
}

func TestWriteDailyReportsSkipped(t *testing.T) {
	sessions := append(testSessions(), domain.Session{SessionID: "no-start", SessionKWH: 1})
	d := domain.GroupByDay(sessions, 1.0)

	var buf bytes.Buffer
	WriteDaily(&buf, domain.ClassMicro, d)
	if !strings.Contains(buf.String(), "Skipped 1 session(s)") {
		t.Errorf("expected skipped line:\n%s", buf.String())
	}
}

func TestWriteDailyEmptyBreakdown(t *testing.T) {
	var buf bytes.Buffer
	WriteDaily(&buf, domain.ClassEmpty, domain.DailyBreakdown{})
	if !strings.Contains(buf.String(), "No sessions") {
		t.Errorf("expected empty-range message:\n%s", buf.String())
	}
}

func TestWriteUsers(t *testing.T) {
	buckets := domain.GroupByUser(testSessions(), 1.0)

	var buf bytes.Buffer
	WriteUsers(&buf, buckets)
	out := buf.String()

	if !strings.Contains(out, "alice") {
		t.Errorf("missing user row:\n%s", out)
	}
	if !strings.Contains(out, domain.UnclaimedUser) {
		t.Errorf("missing unclaimed row:\n%s", out)
	}
	// Unclaimed bucket renders after claimed users.
	if strings.Index(out, domain.UnclaimedUser) < strings.Index(out, "alice") {
		t.Errorf("unclaimed bucket should be last:\n%s", out)
	}
}

func TestWriteSummary(t *testing.T) {
	s := domain.Summarize(testSessions(), 1.0)

	var buf bytes.Buffer
	WriteSummary(&buf, s, 1.0)
	out := buf.String()

	for _, want := range []string{
		"Total sessions analyzed: 2",
		"Empty sessions (0 kWh): 1 (50.0%)",
		"Combined (empty + micro): 1 (50.0%)",
		"Normal sessions (>= 1 kWh): 1 (50.0%)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWriteSessionDetails(t *testing.T) {
	calc := domain.NewCalculator(domain.DefaultVoltage)

	var buf bytes.Buffer
	WriteSessionDetails(&buf, testSessions(), calc)
	out := buf.String()

	// alice: 2 kWh over 1h at 208V.
	if !strings.Contains(out, "9.62") {
		t.Errorf("expected 9.62 average amps:\n%s", out)
	}
	if !strings.Contains(out, "Medium") {
		t.Errorf("expected Medium tier:\n%s", out)
	}
	// The empty session has no timestamps and degrades to N/A.
	if !strings.Contains(out, "N/A") {
		t.Errorf("expected N/A for degraded metrics:\n%s", out)
	}
}

func TestWriteClassLineZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	WriteClassLine(&buf, domain.ClassEmpty, 0, 0, 0)
	if !strings.Contains(buf.String(), "0 (0.0% of total)") {
		t.Errorf("expected zero-guarded percentage:\n%s", buf.String())
	}
}
