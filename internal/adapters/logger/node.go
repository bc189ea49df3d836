package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpinfer/internal/core/ports"
)

// NodeID is the graft ID of the concrete logger.
const NodeID graft.ID = "adapter.logger"

// PortNodeID is the graft ID of the logger exposed as ports.Logger.
const PortNodeID graft.ID = "adapter.logger.port"

func init() {
	graft.Register(graft.Node[*Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Logger, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.Logger]{
		ID:        PortNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			return graft.Dep[*Logger](ctx)
		},
	})
}
