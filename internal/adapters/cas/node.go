package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpinfer/internal/core/ports"
)

// NodeID is the unique identifier for the classpath store Graft node.
const NodeID graft.ID = "adapter.classpath_store"

func init() {
	graft.Register(graft.Node[ports.ClasspathStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ClasspathStore, error) {
			return NewStore(), nil
		},
	})
}
