package table

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/caves/internal/core/ports"
)

// NodeID is the unique identifier for the table reporter Graft node.
const NodeID graft.ID = "adapter.table"

func init() {
	graft.Register(graft.Node[ports.Reporter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Reporter, error) {
			return New(nil), nil
		},
	})
}
