package planner

import (
	"fmt"

	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports"
)

// Plan is the ordered work of one rebuild.
type Plan struct {
	// Graph is the relevant subgraph.
	Graph *domain.Graph
	// Chunks is the execution order of Graph.
	Chunks []domain.Chunk
	// Targets are the nodes whose hooks run. Targets outside Graph are not run.
	Targets domain.NodeSet
	// Entries are the resolved top-level dependencies the traversal started from.
	Entries []domain.InternedString
}

// Executable reports how many targets made it into the chunk sequence.
func (p *Plan) Executable() int {
	n := 0
	for _, chunk := range p.Chunks {
		for _, id := range chunk {
			if p.Targets.Has(id) {
				n++
			}
		}
	}
	return n
}

// ChunkStrings converts the chunk sequence to plain strings.
func (p *Plan) ChunkStrings() [][]string {
	out := make([][]string, len(p.Chunks))
	for i, chunk := range p.Chunks {
		out[i] = domain.Strings(chunk)
	}
	return out
}

// Options configure a single planning run.
type Options struct {
	Policy  domain.DependencyPolicy
	Closure domain.ClosureScope
}

// Planner builds rebuild plans from a lockfile.
type Planner struct {
	resolver ports.DepPathResolver
	logger   ports.Logger
}

// New creates a Planner.
func New(resolver ports.DepPathResolver, logger ports.Logger) *Planner {
	return &Planner{
		resolver: resolver,
		logger:   logger,
	}
}

// Plan selects the relevant subgraph for targets and sequences it.
func (p *Planner) Plan(lockfile *domain.Lockfile, targets domain.NodeSet, opts Options) (*Plan, error) {
	accessor := NewAccessor(lockfile, p.resolver)
	entries := accessor.EntryNodes(opts.Policy)

	var graph *domain.Graph
	switch opts.Closure {
	case domain.ScopeDependencies:
		graph = SelectDependencyClosure(accessor, p.logger, entries, targets, opts.Policy.Optional)
	default:
		graph = SelectSubgraph(accessor, p.logger, entries, targets, opts.Policy.Optional)
	}

	chunks, err := graph.Sequence()
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Graph:   graph,
		Chunks:  chunks,
		Targets: targets,
		Entries: entries,
	}
	if skipped := len(targets) - plan.Executable(); skipped > 0 {
		p.logger.Debug(fmt.Sprintf("%d selected packages are not reachable from the included dependencies", skipped))
	}
	return plan, nil
}
