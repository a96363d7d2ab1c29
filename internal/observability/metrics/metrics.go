package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	dashboardBuilds    metric.Int64Counter
	dashboardDuration  metric.Float64Histogram
	snapshotFetchFails metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "ascendly"
	}
	meter := provider.Meter(name)

	dashboardBuilds, err := meter.Int64Counter("ascendly_dashboard_builds_total")
	if err != nil {
		return nil, err
	}
	dashboardDuration, err := meter.Float64Histogram("ascendly_dashboard_build_seconds")
	if err != nil {
		return nil, err
	}
	snapshotFetchFails, err := meter.Int64Counter("ascendly_snapshot_fetch_failures_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		dashboardBuilds:    dashboardBuilds,
		dashboardDuration:  dashboardDuration,
		snapshotFetchFails: snapshotFetchFails,
	}, nil
}

// RecordDashboardBuild observes one completed dashboard aggregation.
func (m *Metrics) RecordDashboardBuild(ctx context.Context, elapsed time.Duration, outcome string) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", strings.TrimSpace(outcome)))
	m.dashboardBuilds.Add(ctx, 1, attrs)
	m.dashboardDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordSnapshotFetchFailure counts a failed record-set fetch.
func (m *Metrics) RecordSnapshotFetchFailure(ctx context.Context, recordSet string) {
	if m == nil {
		return
	}
	m.snapshotFetchFails.Add(ctx, 1, metric.WithAttributes(attribute.String("record_set", recordSet)))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "http", "http/protobuf":
		return otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	case "", "grpc":
		return otlpmetricgrpc.New(context.Background(),
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported otlp metric protocol %q", protocol)
	}
}
