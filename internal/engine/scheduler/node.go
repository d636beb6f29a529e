package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/central/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/central/internal/adapters/cmake"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/central/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/central/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/central/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/central/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/central/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cmake.NodeID,
			cas.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			logger.NodeID,
			fs.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			tool, err := graft.Dep[ports.BuildTool](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildRecordStore](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
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

			hasher, err := graft.Dep[ports.SourceHasher](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(tool, store, tracer, m, log).WithSourceHasher(hasher), nil
		},
	})
}
