package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// OTelMetrics implements ports.Metrics with OpenTelemetry instruments.
type OTelMetrics struct {
	actions  metric.Int64Counter
	inFlight metric.Int64UpDownCounter
	duration metric.Float64Histogram
	chunks   metric.Int64Counter
}

// NewOTelMetrics creates the instruments on meter. A nil meter uses the
// global meter provider.
func NewOTelMetrics(meter metric.Meter) (*OTelMetrics, error) {
	if meter == nil {
		meter = otel.Meter(InstrumentationName)
	}

	actions, err := meter.Int64Counter("rebuild.actions",
		metric.WithDescription("Rebuild actions by outcome."))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create the actions counter")
	}
	inFlight, err := meter.Int64UpDownCounter("rebuild.actions.in_flight",
		metric.WithDescription("Rebuild actions currently running."))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create the in-flight counter")
	}
	duration, err := meter.Float64Histogram("rebuild.action.duration",
		metric.WithDescription("Duration of rebuild actions."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create the duration histogram")
	}
	chunks, err := meter.Int64Counter("rebuild.chunks",
		metric.WithDescription("Settled chunks."))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create the chunks counter")
	}

	return &OTelMetrics{
		actions:  actions,
		inFlight: inFlight,
		duration: duration,
		chunks:   chunks,
	}, nil
}

// ActionStarted increments the number of in-flight actions.
func (m *OTelMetrics) ActionStarted(ctx context.Context) {
	m.inFlight.Add(ctx, 1)
}

// ActionFinished records the outcome of one action.
func (m *OTelMetrics) ActionFinished(ctx context.Context, status domain.OutcomeStatus, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("status", string(status)))
	m.inFlight.Add(ctx, -1)
	m.actions.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// ChunkCompleted records that a chunk of size nodes settled.
func (m *OTelMetrics) ChunkCompleted(ctx context.Context, size int) {
	m.chunks.Add(ctx, 1, metric.WithAttributes(attribute.Int("size", size)))
}
