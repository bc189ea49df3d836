package realm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpinfer/internal/adapters/fs"
	"go.trai.ch/cpinfer/internal/adapters/logger"
	"go.trai.ch/cpinfer/internal/core/ports"
)

// NodeID is the unique identifier for the realm registry Graft node.
const NodeID graft.ID = "adapter.realm.registry"

func init() {
	graft.Register(graft.Node[ports.RealmRegistry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.InputResolverNodeID, logger.PortNodeID},
		Run: func(ctx context.Context) (ports.RealmRegistry, error) {
			resolver, err := graft.Dep[ports.InputResolver](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(resolver, log), nil
		},
	})
}
