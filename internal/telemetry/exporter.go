package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/pfxtools/seshis/internal/domain"
)

const (
	serviceName    = "seshis"
	serviceVersion = "1.0.0"
)

// RunMetrics are the aggregate figures for one completed analysis run.
type RunMetrics struct {
	RunID    string
	ACN      string
	Account  string
	Summary  domain.Summary
	TotalKWH float64
}

// Reporter pushes run aggregates somewhere. The CLI holds a Reporter so
// it does not care whether export is enabled.
type Reporter interface {
	ReportRun(ctx context.Context, m RunMetrics) error
	Shutdown(ctx context.Context) error
}

// NewReporter returns an OTLP exporter when cfg enables one, a noop
// reporter otherwise.
func NewReporter(ctx context.Context, cfg Config) (Reporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return Noop{}, nil
	}
	return newExporter(ctx, cfg)
}

// Exporter pushes run aggregates to an OTEL Collector over gRPC.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	sessionsTotal metric.Int64Counter
	emptyTotal    metric.Int64Counter
	microTotal    metric.Int64Counter
	normalTotal   metric.Int64Counter
	energyTotal   metric.Float64Counter
	runsTotal     metric.Int64Counter
}

func newExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)
	e := &Exporter{provider: provider}

	if e.sessionsTotal, err = meter.Int64Counter(
		"seshis_sessions_total",
		metric.WithDescription("Sessions analyzed"),
		metric.WithUnit("{session}"),
	); err != nil {
		return nil, fmt.Errorf("creating sessions counter: %w", err)
	}
	if e.emptyTotal, err = meter.Int64Counter(
		"seshis_sessions_empty_total",
		metric.WithDescription("Sessions with zero kWh delivered"),
		metric.WithUnit("{session}"),
	); err != nil {
		return nil, fmt.Errorf("creating empty counter: %w", err)
	}
	if e.microTotal, err = meter.Int64Counter(
		"seshis_sessions_micro_total",
		metric.WithDescription("Sessions under the microsession threshold"),
		metric.WithUnit("{session}"),
	); err != nil {
		return nil, fmt.Errorf("creating micro counter: %w", err)
	}
	if e.normalTotal, err = meter.Int64Counter(
		"seshis_sessions_normal_total",
		metric.WithDescription("Sessions delivering normal energy"),
		metric.WithUnit("{session}"),
	); err != nil {
		return nil, fmt.Errorf("creating normal counter: %w", err)
	}
	if e.energyTotal, err = meter.Float64Counter(
		"seshis_energy_kwh_total",
		metric.WithDescription("Total energy delivered across analyzed sessions"),
		metric.WithUnit("kWh"),
	); err != nil {
		return nil, fmt.Errorf("creating energy counter: %w", err)
	}
	if e.runsTotal, err = meter.Int64Counter(
		"seshis_runs_total",
		metric.WithDescription("Analysis runs completed"),
		metric.WithUnit("{run}"),
	); err != nil {
		return nil, fmt.Errorf("creating runs counter: %w", err)
	}

	return e, nil
}

// ReportRun records the aggregate counters for one analysis run.
func (e *Exporter) ReportRun(ctx context.Context, m RunMetrics) error {
	opt := metric.WithAttributes(
		attribute.String("run_id", m.RunID),
		attribute.String("acn", m.ACN),
		attribute.String("account", m.Account),
	)

	e.sessionsTotal.Add(ctx, int64(m.Summary.Total), opt)
	e.emptyTotal.Add(ctx, int64(m.Summary.Empty), opt)
	e.microTotal.Add(ctx, int64(m.Summary.Micro), opt)
	e.normalTotal.Add(ctx, int64(m.Summary.Normal), opt)
	e.energyTotal.Add(ctx, m.TotalKWH, opt)
	e.runsTotal.Add(ctx, 1, opt)
	return nil
}

// Shutdown flushes pending metrics and stops the provider.
func (e *Exporter) Shutdown(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
