// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/central/internal/adapters/cas"
	_ "go.trai.ch/central/internal/adapters/cmake"
	_ "go.trai.ch/central/internal/adapters/config"
	_ "go.trai.ch/central/internal/adapters/fs"
	_ "go.trai.ch/central/internal/adapters/logger"
	_ "go.trai.ch/central/internal/adapters/metrics"
	_ "go.trai.ch/central/internal/adapters/plot"
	_ "go.trai.ch/central/internal/adapters/shell"
	_ "go.trai.ch/central/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/central/internal/app"
	_ "go.trai.ch/central/internal/engine/inspector"
	_ "go.trai.ch/central/internal/engine/scheduler"
)
