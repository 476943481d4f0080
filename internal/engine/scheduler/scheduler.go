// Package scheduler runs the lifecycle hooks of a rebuild plan.
package scheduler

import (
	"context"
	"fmt"

	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports"
	"go.trai.ch/rebuild/internal/engine/planner"
	"golang.org/x/sync/semaphore"
)

// Scheduler executes plans. Each call to Rebuild gets its own limiter, so the
// concurrency bound holds per invocation.
type Scheduler struct {
	runner   ports.HookRunner
	records  ports.BuildRecordStore
	hasher   ports.Hasher
	logger   ports.Logger
	tracer   ports.Tracer
	metrics  ports.Metrics
	progress ports.Progress
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	runner ports.HookRunner,
	records ports.BuildRecordStore,
	hasher ports.Hasher,
	logger ports.Logger,
	tracer ports.Tracer,
	metrics ports.Metrics,
	progress ports.Progress,
) *Scheduler {
	return &Scheduler{
		runner:   runner,
		records:  records,
		hasher:   hasher,
		logger:   logger,
		tracer:   tracer,
		metrics:  metrics,
		progress: progress,
	}
}

// Rebuild runs the targets of plan, at most job.Settings.ChildConcurrency at a time.
func (s *Scheduler) Rebuild(ctx context.Context, plan *planner.Plan, job *Job) (*domain.Report, error) {
	limit := job.Settings.ChildConcurrency
	if limit < 1 {
		limit = domain.DefaultChildConcurrency
	}

	s.logger.Debug(fmt.Sprintf("rebuilding %d packages in %d chunks with concurrency %d",
		plan.Executable(), len(plan.Chunks), limit))

	action := NewAction(job, s.runner, s.records, s.hasher, s.logger, s.progress, s.tracer)
	executor := NewExecutor(semaphore.NewWeighted(int64(limit)), action, s.tracer, s.metrics)
	return executor.Execute(ctx, plan.Chunks, plan.Targets)
}
