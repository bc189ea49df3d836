package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpinfer/internal/core/ports"
)

const (
	WalkerNodeID        graft.ID = "adapter.fs.walker"
	ResolverNodeID      graft.ID = "adapter.fs.resolver"
	InputResolverNodeID graft.ID = "adapter.fs.input_resolver"
	HasherNodeID        graft.ID = "adapter.fs.hasher"
	VerifierNodeID      graft.ID = "adapter.fs.verifier"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	// Concrete resolver, shared by the hasher and the input resolver port.
	graft.Register(graft.Node[*Resolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Resolver, error) {
			return NewResolver(), nil
		},
	})

	graft.Register(graft.Node[ports.InputResolver]{
		ID:        InputResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ResolverNodeID},
		Run: func(ctx context.Context) (ports.InputResolver, error) {
			return graft.Dep[*Resolver](ctx)
		},
	})

	graft.Register(graft.Node[ports.Fingerprinter]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID, ResolverNodeID},
		Run: func(ctx context.Context) (ports.Fingerprinter, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[*Resolver](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(walker, resolver), nil
		},
	})

	graft.Register(graft.Node[ports.RootVerifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RootVerifier, error) {
			return NewVerifier(), nil
		},
	})
}
