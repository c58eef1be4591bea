package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/caves/internal/adapters/input"              //nolint:depguard // Wired in app layer
	"go.trai.ch/caves/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/caves/internal/adapters/table"              //nolint:depguard // Wired in app layer
	"go.trai.ch/caves/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/caves/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/caves/internal/core/ports"
	"go.trai.ch/caves/internal/engine/pathfinder"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			input.NodeID,
			pathfinder.NodeID,
			logger.NodeID,
			progrock.NodeID,
			table.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.PuzzleLoader](ctx)
	if err != nil {
		return nil, err
	}

	counter, err := graft.Dep[*pathfinder.Counter](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	reporter, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, counter, log, telemetry, reporter, w), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}
