package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/central/internal/adapters/cmake"   //nolint:depguard // Wired in app layer
	"go.trai.ch/central/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/central/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/central/internal/adapters/metrics" //nolint:depguard // Wired in app layer
	"go.trai.ch/central/internal/adapters/plot"    //nolint:depguard // Wired in app layer
	"go.trai.ch/central/internal/core/ports"
	"go.trai.ch/central/internal/engine/inspector"
	"go.trai.ch/central/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cmake.NodeID,
			plot.NodeID,
			metrics.NodeID,
			logger.NodeID,
			scheduler.NodeID,
			inspector.NodeID,
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

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	tool, err := graft.Dep[ports.BuildTool](ctx)
	if err != nil {
		return nil, err
	}

	plotter, err := graft.Dep[ports.Plotter](ctx)
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

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	insp, err := graft.Dep[*inspector.Inspector](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, tool, plotter, m, log, sched, insp), nil
}
