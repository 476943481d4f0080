package planner

import (
	"fmt"

	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports"
)

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	included
	excluded
)

// subgraphWalker decides node inclusion depth-first. Its memo is owned by a
// single selection and is never shared.
type subgraphWalker struct {
	accessor        *Accessor
	logger          ports.Logger
	targets         domain.NodeSet
	includeOptional bool
	state           map[domain.InternedString]visitState
}

// SelectSubgraph returns the nodes reachable from entries that are targets or
// have an included descendant. Edges of included nodes are restricted to
// included children.
func SelectSubgraph(
	accessor *Accessor,
	logger ports.Logger,
	entries []domain.InternedString,
	targets domain.NodeSet,
	includeOptional bool,
) *domain.Graph {
	w := &subgraphWalker{
		accessor:        accessor,
		logger:          logger,
		targets:         targets,
		includeOptional: includeOptional,
		state:           make(map[domain.InternedString]visitState),
	}
	for _, entry := range entries {
		w.visit(entry)
	}
	return w.graph()
}

func (w *subgraphWalker) visit(id domain.InternedString) bool {
	switch w.state[id] {
	case included:
		return true
	case excluded, visiting:
		return false
	}

	if _, ok := w.accessor.Snapshot(id); !ok {
		w.logger.Debug(fmt.Sprintf("no entry for %s in the lockfile", id))
		w.state[id] = excluded
		return false
	}

	w.state[id] = visiting
	include := w.targets.Has(id)
	for _, child := range w.accessor.Children(id, w.includeOptional) {
		if w.visit(child) {
			include = true
		}
	}

	if include {
		w.state[id] = included
	} else {
		w.state[id] = excluded
	}
	return include
}

func (w *subgraphWalker) graph() *domain.Graph {
	g := domain.NewGraph()
	for id, state := range w.state {
		if state != included {
			continue
		}
		var children []domain.InternedString
		for _, child := range w.accessor.Children(id, true) {
			if w.state[child] == included {
				children = append(children, child)
			}
		}
		g.AddNode(id, children...)
	}
	return g
}

// SelectDependencyClosure returns the targets reachable from entries together
// with their transitive dependencies.
func SelectDependencyClosure(
	accessor *Accessor,
	logger ports.Logger,
	entries []domain.InternedString,
	targets domain.NodeSet,
	includeOptional bool,
) *domain.Graph {
	seen := domain.NewNodeSet()
	reachable := domain.NewNodeSet()
	stack := append([]domain.InternedString(nil), entries...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen.Has(id) {
			continue
		}
		seen.Add(id)
		if _, ok := accessor.Snapshot(id); !ok {
			logger.Debug(fmt.Sprintf("no entry for %s in the lockfile", id))
			continue
		}
		reachable.Add(id)
		stack = append(stack, accessor.Children(id, includeOptional)...)
	}

	closure := domain.NewNodeSet()
	for _, target := range targets.Sorted() {
		if !reachable.Has(target) {
			continue
		}
		stack = append(stack[:0], target)
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if closure.Has(id) {
				continue
			}
			closure.Add(id)
			for _, child := range accessor.Children(id, includeOptional) {
				if reachable.Has(child) {
					stack = append(stack, child)
				}
			}
		}
	}

	g := domain.NewGraph()
	for id := range closure {
		var children []domain.InternedString
		for _, child := range accessor.Children(id, true) {
			if closure.Has(child) {
				children = append(children, child)
			}
		}
		g.AddNode(id, children...)
	}
	return g
}
