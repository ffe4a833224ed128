package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/pfxtools/seshis/internal/domain"
	"github.com/pfxtools/seshis/internal/powerflex"
)

func TestResolveRangePresets(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

	from, to, err := resolveRange("", "", "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from.Hour() != 0 || from.Day() != 14 {
		t.Errorf("default preset from = %v, want start of today", from)
	}
	if !to.Equal(now) {
		t.Errorf("to = %v, want now", to)
	}

	from, _, err = resolveRange("week", "", "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !from.Equal(now.AddDate(0, 0, -7)) {
		t.Errorf("week from = %v", from)
	}

	if _, _, err := resolveRange("fortnight", "", "", now); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestResolveRangeExplicitDates(t *testing.T) {
	now := time.Now()

	from, to, err := resolveRange("", "2025-02-01", "2025-02-28", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from.Format("2006-01-02") != "2025-02-01" || to.Format("2006-01-02") != "2025-02-28" {
		t.Errorf("range = %v..%v", from, to)
	}

	if _, _, err := resolveRange("", "2025-02-01", "", now); err == nil {
		t.Error("expected error when only --from is given")
	}
	if _, _, err := resolveRange("", "2025-02-28", "2025-02-01", now); err == nil {
		t.Error("expected error for inverted range")
	}
	if _, _, err := resolveRange("", "02/01/2025", "2025-02-28", now); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestWriteRawSessions(t *testing.T) {
	n, err := powerflex.Normalize([]byte(`[{"session_id":"a","session_kwh":1,"site":"lot-7"},{"session_id":"b"}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := writeRawSessions(&buf, n.Sessions); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("got %d records, want 2", len(decoded))
	}
	// Unmodeled fields pass through untouched.
	if decoded[0]["site"] != "lot-7" {
		t.Errorf("site = %v, want lot-7", decoded[0]["site"])
	}
}

func TestTotalEnergy(t *testing.T) {
	sessions := []domain.Session{
		{SessionKWH: 1.5},
		{SessionKWH: 0},
		{SessionKWH: 2.25},
	}
	if got := totalEnergy(sessions); got != 3.75 {
		t.Errorf("totalEnergy = %v, want 3.75", got)
	}
	if got := totalEnergy(nil); got != 0 {
		t.Errorf("totalEnergy(nil) = %v, want 0", got)
	}
}
