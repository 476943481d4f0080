package lockfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rebuild/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the lockfile loader Graft node.
	NodeID graft.ID = "adapter.lockfile_loader"
	// DepPathNodeID is the unique identifier for the dependency path resolver Graft node.
	DepPathNodeID graft.ID = "adapter.dep_path_resolver"
)

func init() {
	graft.Register(graft.Node[ports.LockfileLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockfileLoader, error) {
			return NewLoader(), nil
		},
	})

	graft.Register(graft.Node[ports.DepPathResolver]{
		ID:        DepPathNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DepPathResolver, error) {
			return NewDepPath(), nil
		},
	})
}
