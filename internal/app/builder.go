package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/phased/internal/adapters/checkpoint"
	"go.trai.ch/phased/internal/adapters/config"
	"go.trai.ch/phased/internal/adapters/logger"
	"go.trai.ch/phased/internal/adapters/telemetry"
	"go.trai.ch/phased/internal/core/domain"
	"go.trai.ch/phased/internal/core/ports"
	"go.trai.ch/phased/internal/experiment"
)

// Components bundles the fully wired application objects the entry
// point needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the App Graft node.
const NodeID graft.ID = "app"

// ComponentsNodeID is the unique identifier for the Components Graft node.
const ComponentsNodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			checkpoint.NodeID,
			logger.NodeID,
			telemetry.NodeID,
			experiment.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.ResultStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			phases, err := graft.Dep[[]domain.Phase](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, store, log, tracer, phases), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}
