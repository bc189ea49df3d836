package classfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cpinfer/internal/core/ports"
)

// NodeID is the unique identifier for the class file scanner Graft node.
const NodeID graft.ID = "adapter.classfile.scanner"

func init() {
	graft.Register(graft.Node[ports.BinaryScanner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BinaryScanner, error) {
			return NewScanner(), nil
		},
	})
}
