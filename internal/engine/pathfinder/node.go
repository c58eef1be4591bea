package pathfinder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/caves/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/caves/internal/core/ports"
)

// NodeID is the unique identifier for the pathfinder Graft node.
const NodeID graft.ID = "engine.pathfinder"

func init() {
	graft.Register(graft.Node[*Counter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Counter, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCounter(WithLogger(log)), nil
		},
	})
}
