package scheduler

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Runner rebuilds a single node.
type Runner interface {
	Run(ctx context.Context, id domain.InternedString) domain.ExecutionOutcome
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, id domain.InternedString) domain.ExecutionOutcome

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, id domain.InternedString) domain.ExecutionOutcome {
	return f(ctx, id)
}

// Executor walks a chunk sequence. Chunks run one after another; the targets
// of a chunk run concurrently, bounded by a limiter shared by every chunk.
type Executor struct {
	limiter *semaphore.Weighted
	runner  Runner
	tracer  ports.Tracer
	metrics ports.Metrics
}

// NewExecutor creates an Executor. The limiter bounds how many runners are
// active at once across the whole invocation.
func NewExecutor(
	limiter *semaphore.Weighted,
	runner Runner,
	tracer ports.Tracer,
	metrics ports.Metrics,
) *Executor {
	return &Executor{
		limiter: limiter,
		runner:  runner,
		tracer:  tracer,
		metrics: metrics,
	}
}

// Execute runs every target of chunks in order. When a chunk produces a fatal
// failure, the chunk's in-flight work settles and no later chunk starts; the
// targets of those later chunks are reported as cancelled.
func (e *Executor) Execute(ctx context.Context, chunks []domain.Chunk, targets domain.NodeSet) (*domain.Report, error) {
	report := domain.NewReport(chunks, targets)

	ctx, span := e.tracer.Start(ctx, "execute")
	defer span.End()

	plannedChunks := make([][]string, len(chunks))
	for i, chunk := range chunks {
		plannedChunks[i] = domain.Strings(chunk)
	}
	e.tracer.EmitPlan(ctx, plannedChunks, domain.Strings(targets.Sorted()))

	work := make([][]domain.InternedString, len(chunks))
	for i, chunk := range chunks {
		for _, id := range chunk {
			if targets.Has(id) {
				work[i] = append(work[i], id)
			}
		}
	}

	for i, ids := range work {
		if len(ids) == 0 {
			continue
		}
		span.SetAttribute("chunk", i)

		failures := e.runChunk(ctx, ids, report)
		e.metrics.ChunkCompleted(ctx, len(ids))

		if len(failures) > 0 {
			for _, rest := range work[i+1:] {
				report.Cancel(rest...)
			}
			err := errors.Join(failures...)
			span.RecordError(err)
			return report, err
		}
	}

	return report, nil
}

func (e *Executor) runChunk(ctx context.Context, ids []domain.InternedString, report *domain.Report) []error {
	var (
		g        errgroup.Group
		mu       sync.Mutex
		failures []domain.ExecutionOutcome
	)

	for _, id := range ids {
		g.Go(func() error {
			outcome := e.runOne(ctx, id)
			report.Record(outcome)

			if outcome.Status == domain.OutcomeFailed {
				mu.Lock()
				failures = append(failures, outcome)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	slices.SortFunc(failures, func(a, b domain.ExecutionOutcome) int {
		return a.Node.Compare(b.Node)
	})
	errs := make([]error, len(failures))
	for i, f := range failures {
		errs[i] = f.Err
	}
	return errs
}

func (e *Executor) runOne(ctx context.Context, id domain.InternedString) domain.ExecutionOutcome {
	if err := e.limiter.Acquire(ctx, 1); err != nil {
		return domain.ExecutionOutcome{
			Node:   id,
			Status: domain.OutcomeFailed,
			Err:    &domain.RebuildError{Node: id, Err: err},
		}
	}
	defer e.limiter.Release(1)

	e.metrics.ActionStarted(ctx)

	start := time.Now()
	outcome := e.runner.Run(ctx, id)
	outcome.Node = id
	outcome.Duration = time.Since(start)

	e.metrics.ActionFinished(ctx, outcome.Status, outcome.Duration)
	return outcome
}
