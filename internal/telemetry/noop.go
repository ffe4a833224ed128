package telemetry

import "context"

// Noop discards run metrics. Used when OTLP export is not configured.
type Noop struct{}

func (Noop) ReportRun(ctx context.Context, m RunMetrics) error { return nil }
func (Noop) Shutdown(ctx context.Context) error                { return nil }
