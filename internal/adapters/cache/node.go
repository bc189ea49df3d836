package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpinfer/internal/core/ports"
)

// NodeID is the unique identifier for the classpath cache Graft node.
const NodeID graft.ID = "adapter.cache"

func init() {
	graft.Register(graft.Node[ports.ClasspathCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ClasspathCache, error) {
			return NewMemory(), nil
		},
	})
}
