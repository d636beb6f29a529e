package plot

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/central/internal/core/ports"
)

// NodeID is the unique identifier for the plot Graft node.
const NodeID graft.ID = "adapter.plotter"

func init() {
	graft.Register(graft.Node[ports.Plotter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Plotter, error) {
			return New(), nil
		},
	})
}
