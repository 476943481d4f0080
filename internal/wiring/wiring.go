// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rebuild/internal/adapters/cas"
	_ "go.trai.ch/rebuild/internal/adapters/config"
	_ "go.trai.ch/rebuild/internal/adapters/fs"
	_ "go.trai.ch/rebuild/internal/adapters/lifecycle"
	_ "go.trai.ch/rebuild/internal/adapters/lockfile"
	_ "go.trai.ch/rebuild/internal/adapters/logger"
	_ "go.trai.ch/rebuild/internal/adapters/modules"
	_ "go.trai.ch/rebuild/internal/adapters/telemetry"
	_ "go.trai.ch/rebuild/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/rebuild/internal/app"
	_ "go.trai.ch/rebuild/internal/engine/planner"
	_ "go.trai.ch/rebuild/internal/engine/scheduler"
)
