// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/caves/internal/adapters/input"
	_ "go.trai.ch/caves/internal/adapters/logger"
	_ "go.trai.ch/caves/internal/adapters/table"
	_ "go.trai.ch/caves/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/caves/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/caves/internal/app"
	_ "go.trai.ch/caves/internal/engine/pathfinder"
)
