package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpinfer/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/cpinfer/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cpinfer/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/cpinfer/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cpinfer/internal/adapters/metrics" //nolint:depguard // Wired in app layer
	"go.trai.ch/cpinfer/internal/adapters/realm"   //nolint:depguard // Wired in app layer
	"go.trai.ch/cpinfer/internal/adapters/shell"   //nolint:depguard // Wired in app layer
	"go.trai.ch/cpinfer/internal/core/ports"
	"go.trai.ch/cpinfer/internal/engine/inferer"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	// SetVerbose toggles debug logging.
	SetVerbose func(verbose bool)
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			realm.NodeID,
			inferer.NodeID,
			fs.HasherNodeID,
			fs.VerifierNodeID,
			cas.NodeID,
			shell.NodeID,
			metrics.NodeID,
			logger.PortNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[*logger.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log, SetVerbose: log.SetVerbose}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	registry, err := graft.Dep[ports.RealmRegistry](ctx)
	if err != nil {
		return nil, err
	}

	engine, err := graft.Dep[*inferer.Engine](ctx)
	if err != nil {
		return nil, err
	}

	fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.RootVerifier](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ClasspathStore](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	m, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, registry, engine, fingerprinter, verifier, store, executor, m, log), nil
}
