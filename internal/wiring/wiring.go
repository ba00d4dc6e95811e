// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tagger/internal/adapters/baseline"
	_ "go.trai.ch/tagger/internal/adapters/cas"
	_ "go.trai.ch/tagger/internal/adapters/config"
	_ "go.trai.ch/tagger/internal/adapters/corpus"
	_ "go.trai.ch/tagger/internal/adapters/fs"
	_ "go.trai.ch/tagger/internal/adapters/logger"
	_ "go.trai.ch/tagger/internal/adapters/telemetry"
	_ "go.trai.ch/tagger/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/tagger/internal/app"
)
