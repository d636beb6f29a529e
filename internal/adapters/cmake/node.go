package cmake

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/central/internal/adapters/logger"
	"go.trai.ch/central/internal/adapters/shell"
	"go.trai.ch/central/internal/core/ports"
)

// NodeID is the unique identifier for the build tool Graft node.
const NodeID graft.ID = "adapter.build_tool"

func init() {
	graft.Register(graft.Node[ports.BuildTool]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.BuildTool, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(executor, log), nil
		},
	})
}
