package inferer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpinfer/internal/adapters/cache"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cpinfer/internal/adapters/classfile" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cpinfer/internal/adapters/locator"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cpinfer/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cpinfer/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cpinfer/internal/adapters/realm"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cpinfer/internal/core/ports"
)

// NodeID is the unique identifier for the inference engine Graft node.
const NodeID graft.ID = "engine.inferer"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			realm.NodeID,
			locator.NodeID,
			classfile.NodeID,
			cache.NodeID,
			logger.PortNodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			registry, err := graft.Dep[ports.RealmRegistry](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.LocationResolver](ctx)
			if err != nil {
				return nil, err
			}

			scanner, err := graft.Dep[ports.BinaryScanner](ctx)
			if err != nil {
				return nil, err
			}

			c, err := graft.Dep[ports.ClasspathCache](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			engine := NewEngine(registry, resolver, scanner, c, log, m)
			registry.OnEvict(engine.Forget)
			return engine, nil
		},
	})
}
