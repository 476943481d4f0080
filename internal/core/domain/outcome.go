package domain

import (
	"slices"
	"sync"
	"time"
)

// OutcomeStatus classifies the result of a single rebuild action.
type OutcomeStatus string

const (
	// OutcomeSucceeded indicates every hook of the package completed.
	OutcomeSucceeded OutcomeStatus = "succeeded"
	// OutcomeSkippedOptional indicates an optional package failed and was skipped.
	OutcomeSkippedOptional OutcomeStatus = "skipped_optional_failure"
	// OutcomeFailed indicates a non-optional package failed.
	OutcomeFailed OutcomeStatus = "failed"
)

// ExecutionOutcome records what happened to one executed node.
type ExecutionOutcome struct {
	Node     InternedString
	Package  PackageName
	Status   OutcomeStatus
	Err      error
	Duration time.Duration
}

// Report collects the outcomes of an invocation. It is safe for concurrent use.
type Report struct {
	mu        sync.Mutex
	outcomes  []ExecutionOutcome
	cancelled NodeSet
	// Chunks is the sequence the executor walked.
	Chunks []Chunk
	// Targets is the set of nodes selected for execution.
	Targets NodeSet
}

// NewReport creates an empty report for the given plan.
func NewReport(chunks []Chunk, targets NodeSet) *Report {
	return &Report{Chunks: chunks, Targets: targets, cancelled: NewNodeSet()}
}

// Cancel marks targets that never started because an earlier chunk failed.
func (r *Report) Cancel(ids ...InternedString) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelled == nil {
		r.cancelled = NewNodeSet()
	}
	for _, id := range ids {
		r.cancelled.Add(id)
	}
}

// Cancelled returns the targets that never started, in sorted order.
func (r *Report) Cancelled() []InternedString {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelled == nil {
		return nil
	}
	return r.cancelled.Sorted()
}

// Record appends an outcome.
func (r *Report) Record(o ExecutionOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

// Outcomes returns the recorded outcomes sorted by node.
func (r *Report) Outcomes() []ExecutionOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.outcomes)
	slices.SortFunc(out, func(a, b ExecutionOutcome) int {
		return a.Node.Compare(b.Node)
	})
	return out
}

// Count returns how many outcomes have the given status.
func (r *Report) Count(status OutcomeStatus) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, o := range r.outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Executed returns the nodes that were run, in sorted order.
func (r *Report) Executed() []InternedString {
	outcomes := r.Outcomes()
	ids := make([]InternedString, len(outcomes))
	for i, o := range outcomes {
		ids[i] = o.Node
	}
	return ids
}
