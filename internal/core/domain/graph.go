// Package domain contains the core domain models of the selective rebuild scheduler.
package domain

import (
	"slices"
	"strings"
)

// NodeSet is a set of lockfile node identifiers.
type NodeSet map[InternedString]struct{}

// NewNodeSet creates a set holding ids.
func NewNodeSet(ids ...InternedString) NodeSet {
	s := make(NodeSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id into the set.
func (s NodeSet) Add(id InternedString) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set.
func (s NodeSet) Has(id InternedString) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members ordered by their string value.
func (s NodeSet) Sorted() []InternedString {
	ids := make([]InternedString, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	SortInterned(ids)
	return ids
}

// Chunk is a set of nodes with no dependency edges among them.
type Chunk []InternedString

// Graph is the relevant subgraph of a lockfile: the nodes that must be
// considered for a rebuild and, for each, its dependencies inside the subgraph.
type Graph struct {
	children map[InternedString][]InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		children: make(map[InternedString][]InternedString),
	}
}

// AddNode adds id with the given dependencies. Adding a node twice merges the
// dependency lists. Dependencies that are never added as nodes are ignored
// when sequencing.
func (g *Graph) AddNode(id InternedString, children ...InternedString) {
	existing := g.children[id]
	for _, child := range children {
		if !slices.Contains(existing, child) {
			existing = append(existing, child)
		}
	}
	if existing == nil {
		existing = []InternedString{}
	}
	g.children[id] = existing
}

// Has reports whether id is part of the graph.
func (g *Graph) Has(id InternedString) bool {
	_, ok := g.children[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.children)
}

// Nodes returns every node in sorted order.
func (g *Graph) Nodes() []InternedString {
	ids := make([]InternedString, 0, len(g.children))
	for id := range g.children {
		ids = append(ids, id)
	}
	SortInterned(ids)
	return ids
}

// Children returns the in-graph dependencies of id in sorted order.
func (g *Graph) Children(id InternedString) []InternedString {
	var out []InternedString
	for _, child := range g.children[id] {
		if g.Has(child) {
			out = append(out, child)
		}
	}
	SortInterned(out)
	return out
}

// Sequence partitions the graph into chunks such that every dependency of a
// node lands in a strictly earlier chunk. Nodes inside a chunk are sorted.
// It returns ErrCyclicGraph when the graph contains a cycle.
func (g *Graph) Sequence() ([]Chunk, error) {
	pending := make(map[InternedString]int, len(g.children))
	parents := make(map[InternedString][]InternedString, len(g.children))

	for id := range g.children {
		children := g.Children(id)
		pending[id] = len(children)
		for _, child := range children {
			parents[child] = append(parents[child], id)
		}
	}

	ready := make([]InternedString, 0)
	for id, count := range pending {
		if count == 0 {
			ready = append(ready, id)
		}
	}
	SortInterned(ready)

	chunks := make([]Chunk, 0)
	processed := 0
	for len(ready) > 0 {
		chunks = append(chunks, Chunk(ready))
		processed += len(ready)

		var next []InternedString
		for _, id := range ready {
			for _, parent := range parents[id] {
				pending[parent]--
				if pending[parent] == 0 {
					next = append(next, parent)
				}
			}
		}
		SortInterned(next)
		ready = next
	}

	if processed < len(g.children) {
		return nil, g.buildCycleError(pending)
	}
	return chunks, nil
}

// buildCycleError walks the unprocessed nodes until one repeats and reports
// the cycle path as metadata.
func (g *Graph) buildCycleError(pending map[InternedString]int) error {
	remaining := make([]InternedString, 0)
	for id, count := range pending {
		if count > 0 {
			remaining = append(remaining, id)
		}
	}
	SortInterned(remaining)

	var path []InternedString
	seen := make(map[InternedString]int)
	current := remaining[0]
	for {
		if idx, ok := seen[current]; ok {
			path = append(path[idx:], current)
			break
		}
		seen[current] = len(path)
		path = append(path, current)

		for _, child := range g.Children(current) {
			if pending[child] > 0 {
				current = child
				break
			}
		}
	}

	return ErrorWith(ErrCyclicGraph,
		"cycle", strings.Join(Strings(path), " -> "),
		"nodes", Strings(remaining),
	)
}
