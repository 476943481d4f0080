package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rebuild/internal/adapters/lockfile" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rebuild/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rebuild/internal/core/ports"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			lockfile.DepPathNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Planner, error) {
			resolver, err := graft.Dep[ports.DepPathResolver](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(resolver, log), nil
		},
	})
}
