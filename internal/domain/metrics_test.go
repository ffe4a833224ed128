package domain

import (
	"math"
	"testing"
)

func timedSession(kwh float64, createdAt, updatedAt string) Session {
	return Session{
		SessionID:  "s",
		SessionKWH: kwh,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

func TestComputeTiering(t *testing.T) {
	// One hour of charging at 208V.
	const (
		start = "2025-03-14T08:00:00Z"
		end   = "2025-03-14T09:00:00Z"
	)
	calc := NewCalculator(DefaultVoltage)

	tests := []struct {
		name     string
		kwh      float64
		wantAmps float64
		wantTier Tier
	}{
		{"2 kWh over 1h is medium", 2, 9.615, TierMedium},
		{"4 kWh over 1h is high", 4, 19.231, TierHigh},
		{"0.5 kWh over 1h is low", 0.5, 2.404, TierLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := calc.Compute(timedSession(tt.kwh, start, end))
			if !m.DurationKnown {
				t.Fatal("expected known duration")
			}
			if m.DurationLabel != "1.0h" {
				t.Errorf("DurationLabel = %q, want %q", m.DurationLabel, "1.0h")
			}
			if math.Abs(m.AvgPowerW-tt.kwh*1000) > 0.001 {
				t.Errorf("AvgPowerW = %v, want %v", m.AvgPowerW, tt.kwh*1000)
			}
			if math.Abs(m.AvgAmps-tt.wantAmps) > 0.001 {
				t.Errorf("AvgAmps = %v, want about %v", m.AvgAmps, tt.wantAmps)
			}
			if m.Tier != tt.wantTier {
				t.Errorf("Tier = %v, want %v", m.Tier, tt.wantTier)
			}
		})
	}
}

func TestComputeDegradesOnBadTimestamps(t *testing.T) {
	calc := NewCalculator(DefaultVoltage)

	tests := []struct {
		name    string
		session Session
	}{
		{"both timestamps missing", timedSession(2, "", "")},
		{"created_at missing", timedSession(2, "", "2025-03-14T09:00:00Z")},
		{"updated_at missing", timedSession(2, "2025-03-14T08:00:00Z", "")},
		{"malformed created_at", timedSession(2, "yesterday", "2025-03-14T09:00:00Z")},
		{"updated before created", timedSession(2, "2025-03-14T09:00:00Z", "2025-03-14T08:00:00Z")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := calc.Compute(tt.session)
			if m.DurationKnown {
				t.Error("expected unknown duration")
			}
			if m.DurationLabel != "N/A" {
				t.Errorf("DurationLabel = %q, want %q", m.DurationLabel, "N/A")
			}
			if m.AvgAmps != 0 || m.AvgPowerW != 0 {
				t.Errorf("expected zero power figures, got %vW %vA", m.AvgPowerW, m.AvgAmps)
			}
			if m.Tier != TierUnknown {
				t.Errorf("Tier = %v, want %v", m.Tier, TierUnknown)
			}
		})
	}
}

func TestComputeNoAmperageWithoutEnergyOrDuration(t *testing.T) {
	calc := NewCalculator(DefaultVoltage)

	// Zero-length session: duration is known but amperage is undefined.
	m := calc.Compute(timedSession(2, "2025-03-14T08:00:00Z", "2025-03-14T08:00:00Z"))
	if !m.DurationKnown {
		t.Fatal("expected known duration for equal timestamps")
	}
	if m.DurationLabel != "0s" {
		t.Errorf("DurationLabel = %q, want %q", m.DurationLabel, "0s")
	}
	if m.Tier != TierUnknown || m.AvgAmps != 0 {
		t.Errorf("expected unknown tier and zero amps, got %v %vA", m.Tier, m.AvgAmps)
	}

	// Empty session: positive duration but nothing delivered.
	m = calc.Compute(timedSession(0, "2025-03-14T08:00:00Z", "2025-03-14T09:00:00Z"))
	if m.Tier != TierUnknown || m.AvgAmps != 0 {
		t.Errorf("expected unknown tier for 0 kWh, got %v %vA", m.Tier, m.AvgAmps)
	}
}

func TestNewCalculatorDefaults(t *testing.T) {
	calc := NewCalculator(0)
	if calc.Voltage != DefaultVoltage {
		t.Errorf("Voltage = %v, want %v", calc.Voltage, DefaultVoltage)
	}
	if calc.HighAmps != DefaultHighAmps || calc.MediumAmps != DefaultMediumAmps {
		t.Errorf("cutoffs = %v/%v, want %v/%v", calc.HighAmps, calc.MediumAmps, DefaultHighAmps, DefaultMediumAmps)
	}
}

// A 120V circuit moves the same session into a higher tier.
func TestComputeAlternateVoltage(t *testing.T) {
	calc := NewCalculator(120)
	m := calc.Compute(timedSession(2, "2025-03-14T08:00:00Z", "2025-03-14T09:00:00Z"))
	if math.Abs(m.AvgAmps-16.667) > 0.001 {
		t.Errorf("AvgAmps = %v, want about 16.667", m.AvgAmps)
	}
	if m.Tier != TierHigh {
		t.Errorf("Tier = %v, want %v", m.Tier, TierHigh)
	}
}

func TestTierString(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{TierHigh, "High"},
		{TierMedium, "Medium"},
		{TierLow, "Low"},
		{TierUnknown, "N/A"},
	}
	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.want {
			t.Errorf("Tier(%d).String() = %q, want %q", tt.tier, got, tt.want)
		}
	}
}
