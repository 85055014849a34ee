package experiment

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/phased/internal/adapters/logger"
	"go.trai.ch/phased/internal/core/domain"
	"go.trai.ch/phased/internal/core/ports"
)

// NodeID is the unique identifier for the experiment phases Graft node.
const NodeID graft.ID = "experiment.phases"

func init() {
	graft.Register(graft.Node[[]domain.Phase]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) ([]domain.Phase, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return Phases(log), nil
		},
	})
}
