package locator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpinfer/internal/adapters/logger"
	"go.trai.ch/cpinfer/internal/core/ports"
)

// NodeID is the unique identifier for the location resolver Graft node.
const NodeID graft.ID = "adapter.locator"

func init() {
	graft.Register(graft.Node[ports.LocationResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.PortNodeID},
		Run: func(ctx context.Context) (ports.LocationResolver, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(log), nil
		},
	})
}
