package lifecycle

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rebuild/internal/adapters/logger"
	"go.trai.ch/rebuild/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the hook runner Graft node.
	NodeID graft.ID = "adapter.hook_runner"
	// ManifestNodeID is the unique identifier for the manifest reader Graft node.
	ManifestNodeID graft.ID = "adapter.manifest_reader"
)

func init() {
	graft.Register(graft.Node[ports.HookRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.HookRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log), nil
		},
	})

	graft.Register(graft.Node[ports.ManifestReader]{
		ID:        ManifestNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ManifestReader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log), nil
		},
	})
}
