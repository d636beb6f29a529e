package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/central/internal/core/ports"
)

// NodeID is the unique identifier for the source hasher Graft node.
const NodeID graft.ID = "adapter.source_hasher"

func init() {
	graft.Register(graft.Node[ports.SourceHasher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SourceHasher, error) {
			return NewHasher(NewWalker()), nil
		},
	})
}
