package ports

import (
	"context"
	"io"
	"time"

	"go.trai.ch/rebuild/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// EmitPlan signals the chunk sequence that is about to run.
	EmitPlan(ctx context.Context, chunks [][]string, targets []string)
}

// Span represents a unit of work.
type Span interface {
	io.Writer
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	Attributes map[string]any
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithAttribute sets an attribute when the span starts.
func WithAttribute(key string, value any) SpanOption {
	return func(c *SpanConfig) {
		if c.Attributes == nil {
			c.Attributes = make(map[string]any)
		}
		c.Attributes[key] = value
	}
}

// Metrics records rebuild measurements.
type Metrics interface {
	// ActionStarted increments the number of in-flight actions.
	ActionStarted(ctx context.Context)
	// ActionFinished records the outcome of one action and decrements the in-flight count.
	ActionFinished(ctx context.Context, status domain.OutcomeStatus, elapsed time.Duration)
	// ChunkCompleted records that a chunk settled.
	ChunkCompleted(ctx context.Context, size int)
}

// Progress records per-package progress vertices.
type Progress interface {
	// Record starts a vertex named name.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes the recording.
	Close() error
}

// Vertex is one unit of progress output.
type Vertex interface {
	// Stdout returns a writer for standard output of the unit.
	Stdout() io.Writer
	// Stderr returns a writer for error output of the unit.
	Stderr() io.Writer
	// Log writes a leveled line to the vertex.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex finished.
	Complete(err error)
}
