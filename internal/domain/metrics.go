package domain

import (
	"time"

	"github.com/pfxtools/seshis/internal/util"
)

// DefaultVoltage is the assumed line voltage for average-current math.
const DefaultVoltage = 208.0

// Default average-amperage tier cutoffs.
const (
	DefaultHighAmps   = 16.0
	DefaultMediumAmps = 8.0
)

// Tier grades a session by its average current draw.
type Tier int

const (
	// TierUnknown means duration or amperage could not be computed.
	// It sorts and color-codes with TierLow but displays as "N/A".
	TierUnknown Tier = iota
	TierLow
	TierMedium
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "High"
	case TierMedium:
		return "Medium"
	case TierLow:
		return "Low"
	default:
		return "N/A"
	}
}

// Metrics are the derived per-session values every renderer consumes.
// Zero values for power and amperage mean "not computable", never a
// measured zero: amperage is only defined for positive energy over a
// positive duration.
type Metrics struct {
	DurationKnown bool
	Duration      time.Duration
	DurationLabel string
	AvgPowerW     float64
	AvgAmps       float64
	Tier          Tier
}

// Calculator computes derived session metrics under a fixed voltage
// assumption and amperage tier cutoffs.
type Calculator struct {
	Voltage    float64
	HighAmps   float64
	MediumAmps float64
}

// NewCalculator returns a calculator for the given line voltage, falling
// back to DefaultVoltage and the default tier cutoffs.
func NewCalculator(voltage float64) Calculator {
	if voltage <= 0 {
		voltage = DefaultVoltage
	}
	return Calculator{
		Voltage:    voltage,
		HighAmps:   DefaultHighAmps,
		MediumAmps: DefaultMediumAmps,
	}
}

// Compute derives duration, average power and current, and a tier for one
// session. Timestamp parse failures and non-positive durations degrade to
// unknown values; Compute never fails.
func (c Calculator) Compute(s Session) Metrics {
	created, okCreated := util.ParseTime(s.CreatedAt)
	updated, okUpdated := util.ParseTime(s.UpdatedAt)
	if !okCreated || !okUpdated {
		return Metrics{DurationLabel: "N/A", Tier: TierUnknown}
	}

	d := updated.Sub(created)
	if d < 0 {
		return Metrics{DurationLabel: "N/A", Tier: TierUnknown}
	}

	m := Metrics{
		DurationKnown: true,
		Duration:      d,
		DurationLabel: util.FormatDuration(d),
		Tier:          TierUnknown,
	}

	hours := d.Hours()
	if hours <= 0 || s.SessionKWH <= 0 {
		return m
	}

	m.AvgPowerW = s.SessionKWH * 1000 / hours
	m.AvgAmps = m.AvgPowerW / c.Voltage
	switch {
	case m.AvgAmps >= c.HighAmps:
		m.Tier = TierHigh
	case m.AvgAmps >= c.MediumAmps:
		m.Tier = TierMedium
	default:
		m.Tier = TierLow
	}
	return m
}
