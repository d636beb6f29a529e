package ports

import "go.trai.ch/central/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration file at or above cwd, validates it and returns the configuration.
	// Any failure is a configuration error and must stop the run before resolution.
	Load(cwd string) (*domain.Config, error)
}
