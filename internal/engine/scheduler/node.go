package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rebuild/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rebuild/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rebuild/internal/adapters/lifecycle"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rebuild/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rebuild/internal/adapters/telemetry"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rebuild/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rebuild/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			lifecycle.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			telemetry.MetricsNodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			runner, err := graft.Dep[ports.HookRunner](ctx)
			if err != nil {
				return nil, err
			}

			records, err := graft.Dep[ports.BuildRecordStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			metrics, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			progress, err := graft.Dep[ports.Progress](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(runner, records, hasher, log, tracer, metrics, progress), nil
		},
	})
}
