package input

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/caves/internal/core/ports"
)

// NodeID is the unique identifier for the puzzle loader Graft node.
const NodeID graft.ID = "adapter.input"

func init() {
	graft.Register(graft.Node[ports.PuzzleLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PuzzleLoader, error) {
			return New(), nil
		},
	})
}
