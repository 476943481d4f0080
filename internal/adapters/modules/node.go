package modules

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rebuild/internal/core/ports"
)

// NodeID is the unique identifier for the modules state store Graft node.
const NodeID graft.ID = "adapter.modules_store"

func init() {
	graft.Register(graft.Node[ports.ModulesStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ModulesStore, error) {
			return NewStore(), nil
		},
	})
}
