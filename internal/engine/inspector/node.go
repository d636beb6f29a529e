package inspector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/central/internal/adapters/cas"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/central/internal/adapters/cmake" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/central/internal/core/ports"
)

// NodeID is the unique identifier for the inspector Graft node.
const NodeID graft.ID = "engine.inspector"

func init() {
	graft.Register(graft.Node[*Inspector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cmake.NodeID, cas.NodeID},
		Run: func(ctx context.Context) (*Inspector, error) {
			tool, err := graft.Dep[ports.BuildTool](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildRecordStore](ctx)
			if err != nil {
				return nil, err
			}

			return New(tool, store), nil
		},
	})
}
