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
	meetingsCreated     metric.Int64Counter
	meetingConflicts    metric.Int64Counter
	outcomesRecorded    metric.Int64Counter
	aggregations        metric.Int64Counter
	commissionCacheHit  metric.Int64Counter
	commissionCacheMiss metric.Int64Counter
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

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "vendaflow"
	}
	meter := provider.Meter(name)

	meetingsCreated, err := meter.Int64Counter("vendaflow_agendamentos_created_total")
	if err != nil {
		return nil, err
	}
	meetingConflicts, err := meter.Int64Counter("vendaflow_agendamento_conflicts_total")
	if err != nil {
		return nil, err
	}
	outcomesRecorded, err := meter.Int64Counter("vendaflow_meeting_outcomes_total")
	if err != nil {
		return nil, err
	}
	aggregations, err := meter.Int64Counter("vendaflow_performance_aggregations_total")
	if err != nil {
		return nil, err
	}
	commissionCacheHit, err := meter.Int64Counter("vendaflow_commission_cache_hits_total")
	if err != nil {
		return nil, err
	}
	commissionCacheMiss, err := meter.Int64Counter("vendaflow_commission_cache_misses_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		meetingsCreated:     meetingsCreated,
		meetingConflicts:    meetingConflicts,
		outcomesRecorded:    outcomesRecorded,
		aggregations:        aggregations,
		commissionCacheHit:  commissionCacheHit,
		commissionCacheMiss: commissionCacheMiss,
	}, nil
}

// RecordMeetingCreated increments scheduled meeting counts.
func (m *Metrics) RecordMeetingCreated(ctx context.Context, origin string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("origin", strings.TrimSpace(origin)))
	m.meetingsCreated.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordMeetingConflict increments scheduling conflict counts.
func (m *Metrics) RecordMeetingConflict(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("reason", strings.TrimSpace(reason)))
	m.meetingConflicts.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordOutcome increments meeting outcome counts by result code.
func (m *Metrics) RecordOutcome(ctx context.Context, resultado string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("resultado", strings.TrimSpace(resultado)))
	m.outcomesRecorded.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordAggregation increments performance aggregation run counts.
func (m *Metrics) RecordAggregation(ctx context.Context, scope string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("scope", strings.TrimSpace(scope)))
	m.aggregations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCommissionCache increments commission cache hit/miss counts.
func (m *Metrics) RecordCommissionCache(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.commissionCacheHit.Add(ctx, 1)
		return
	}
	m.commissionCacheMiss.Add(ctx, 1)
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"origin":      {},
	"reason":      {},
	"resultado":   {},
	"scope":       {},
	"endpoint":    {},
	"status_code": {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
