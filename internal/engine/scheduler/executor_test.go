package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports"
	"go.trai.ch/rebuild/internal/core/ports/mocks"
	"go.trai.ch/rebuild/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/semaphore"
)

func ids(names ...string) []domain.InternedString {
	return domain.NewInternedStrings(names)
}

func targetSet(names ...string) domain.NodeSet {
	set := domain.NewNodeSet()
	for _, id := range ids(names...) {
		set.Add(id)
	}
	return set
}

func chunksOf(groups ...[]string) []domain.Chunk {
	out := make([]domain.Chunk, len(groups))
	for i, g := range groups {
		out[i] = ids(g...)
	}
	return out
}

func telemetryMocks(ctrl *gomock.Controller) (*mocks.MockTracer, *mocks.MockMetrics) {
	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().Write(gomock.Any()).DoAndReturn(func(p []byte) (int, error) { return len(p), nil }).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	metrics := mocks.NewMockMetrics(ctrl)
	metrics.EXPECT().ActionStarted(gomock.Any()).AnyTimes()
	metrics.EXPECT().ActionFinished(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	metrics.EXPECT().ChunkCompleted(gomock.Any(), gomock.Any()).AnyTimes()

	return tracer, metrics
}

func newExecutor(t *testing.T, limit int64, runner scheduler.Runner) *scheduler.Executor {
	t.Helper()
	tracer, metrics := telemetryMocks(gomock.NewController(t))
	return scheduler.NewExecutor(semaphore.NewWeighted(limit), runner, tracer, metrics)
}

func succeed(_ context.Context, id domain.InternedString) domain.ExecutionOutcome {
	return domain.ExecutionOutcome{Node: id, Status: domain.OutcomeSucceeded}
}

func TestExecutor_ConcurrencyBound(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var active, peak atomic.Int32

		runner := scheduler.RunnerFunc(func(ctx context.Context, id domain.InternedString) domain.ExecutionOutcome {
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(time.Second)
			active.Add(-1)
			return succeed(ctx, id)
		})

		names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
		exec := newExecutor(t, 3, runner)

		report, err := exec.Execute(context.Background(), chunksOf(names), targetSet(names...))
		require.NoError(t, err)

		assert.Equal(t, int32(3), peak.Load())
		assert.Len(t, report.Outcomes(), len(names))
		assert.Equal(t, len(names), report.Count(domain.OutcomeSucceeded))
	})
}

func TestExecutor_LimitOneRunsSequentially(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var active atomic.Int32
		runner := scheduler.RunnerFunc(func(ctx context.Context, id domain.InternedString) domain.ExecutionOutcome {
			if active.Add(1) > 1 {
				t.Errorf("%s started while another action was running", id)
			}
			time.Sleep(time.Second)
			active.Add(-1)
			return succeed(ctx, id)
		})

		start := time.Now()
		_, err := newExecutor(t, 1, runner).Execute(context.Background(),
			chunksOf([]string{"a", "b", "c"}, []string{"d"}), targetSet("a", "b", "c", "d"))
		require.NoError(t, err)
		assert.Equal(t, 4*time.Second, time.Since(start))
	})
}

func TestExecutor_ChunksRunInOrder(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var (
			mu       sync.Mutex
			finished = map[string]time.Time{}
			started  = map[string]time.Time{}
		)
		durations := map[string]time.Duration{"a": time.Second, "b": 3 * time.Second, "c": time.Second}

		runner := scheduler.RunnerFunc(func(ctx context.Context, id domain.InternedString) domain.ExecutionOutcome {
			mu.Lock()
			started[id.String()] = time.Now()
			mu.Unlock()
			time.Sleep(durations[id.String()])
			mu.Lock()
			finished[id.String()] = time.Now()
			mu.Unlock()
			return succeed(ctx, id)
		})

		_, err := newExecutor(t, 5, runner).Execute(context.Background(),
			chunksOf([]string{"a", "b"}, []string{"c"}), targetSet("a", "b", "c"))
		require.NoError(t, err)

		assert.False(t, started["c"].Before(finished["a"]))
		assert.False(t, started["c"].Before(finished["b"]))
		assert.Equal(t, started["a"], started["b"])
	})
}

func TestExecutor_OnlyTargetsRun(t *testing.T) {
	var ran []string
	var mu sync.Mutex
	runner := scheduler.RunnerFunc(func(ctx context.Context, id domain.InternedString) domain.ExecutionOutcome {
		mu.Lock()
		ran = append(ran, id.String())
		mu.Unlock()
		return succeed(ctx, id)
	})

	exec := newExecutor(t, 2, runner)
	report, err := exec.Execute(context.Background(),
		chunksOf([]string{"a", "x"}, []string{"y"}, []string{"b"}), targetSet("a", "b"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a", "b"}, ran)
	assert.Equal(t, []string{"a", "b"}, domain.Strings(report.Executed()))
	assert.Empty(t, report.Cancelled())
}

func TestExecutor_FatalFailureHaltsLaterChunks(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		boom := errors.New("exit status 1")
		runner := scheduler.RunnerFunc(func(ctx context.Context, id domain.InternedString) domain.ExecutionOutcome {
			switch id.String() {
			case "d":
				time.Sleep(5 * time.Second)
				return succeed(ctx, id)
			case "e":
				time.Sleep(time.Second)
				return domain.ExecutionOutcome{
					Node:   id,
					Status: domain.OutcomeFailed,
					Err:    &domain.RebuildError{Node: id, Name: "e", Version: "1.0.0", Err: boom},
				}
			default:
				t.Errorf("%s should not run after a failed chunk", id)
				return succeed(ctx, id)
			}
		})

		exec := newExecutor(t, 4, runner)
		report, err := exec.Execute(context.Background(),
			chunksOf([]string{"d", "e"}, []string{"f", "x"}, []string{"g"}), targetSet("d", "e", "f", "g"))

		require.Error(t, err)
		require.ErrorIs(t, err, domain.ErrRebuildFailed)
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "e")

		assert.Equal(t, []string{"d", "e"}, domain.Strings(report.Executed()))
		assert.Equal(t, 1, report.Count(domain.OutcomeSucceeded))
		assert.Equal(t, 1, report.Count(domain.OutcomeFailed))

		assert.Equal(t, []string{"f", "g"}, domain.Strings(report.Cancelled()))
	})
}

func TestExecutor_FailuresAreJoinedInNodeOrder(t *testing.T) {
	runner := scheduler.RunnerFunc(func(_ context.Context, id domain.InternedString) domain.ExecutionOutcome {
		return domain.ExecutionOutcome{
			Node:   id,
			Status: domain.OutcomeFailed,
			Err:    &domain.RebuildError{Node: id, Err: errors.New("boom")},
		}
	})

	_, err := newExecutor(t, 2, runner).Execute(context.Background(),
		chunksOf([]string{"b", "a"}), targetSet("a", "b"))
	require.Error(t, err)
	assert.Equal(t, "rebuild failed for a: boom\nrebuild failed for b: boom", err.Error())
}

func TestExecutor_OptionalFailureDoesNotHalt(t *testing.T) {
	runner := scheduler.RunnerFunc(func(ctx context.Context, id domain.InternedString) domain.ExecutionOutcome {
		if id.String() == "o" {
			return domain.ExecutionOutcome{
				Node:   id,
				Status: domain.OutcomeSkippedOptional,
				Err:    errors.New("no compiler"),
			}
		}
		return succeed(ctx, id)
	})

	exec := newExecutor(t, 2, runner)
	report, err := exec.Execute(context.Background(),
		chunksOf([]string{"o"}, []string{"p"}), targetSet("o", "p"))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Count(domain.OutcomeSkippedOptional))
	assert.Equal(t, 1, report.Count(domain.OutcomeSucceeded))
	assert.Equal(t, domain.OutcomeSkippedOptional, report.Outcomes()[0].Status)
	assert.Empty(t, report.Cancelled())
}

func TestExecutor_EmptyPlan(t *testing.T) {
	runner := scheduler.RunnerFunc(func(_ context.Context, id domain.InternedString) domain.ExecutionOutcome {
		t.Errorf("unexpected run of %s", id)
		return domain.ExecutionOutcome{}
	})

	report, err := newExecutor(t, 1, runner).Execute(context.Background(), nil, domain.NewNodeSet())
	require.NoError(t, err)
	assert.Empty(t, report.Outcomes())
}
