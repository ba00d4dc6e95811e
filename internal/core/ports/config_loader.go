package ports

import "go.trai.ch/tagger/internal/core/domain"

// ConfigLoader defines the interface for loading the training settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads, defaults and validates the settings document at path.
	Load(path string) (*domain.Settings, error)
}
