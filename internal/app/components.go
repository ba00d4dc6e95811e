package app

import (
	"go.trai.ch/tagger/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/tagger/internal/core/ports"
)

// Components contains the initialized application components.
type Components struct {
	App *App
	// Logger is the shared logger, used by main to report failures.
	Logger ports.Logger
	// LogControl switches the logger format and verbosity from the CLI flags.
	LogControl *logger.Logger
}
