package ports

import "go.trai.ch/cjsguard/internal/core/domain"

// ConfigLoader defines the interface for loading the cjsguard configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration file for the given working directory and returns
	// the resolved configuration. Defaults are returned when no file exists.
	Load(cwd string) (*domain.Config, error)
	// LoadFile reads the configuration from an explicit path.
	LoadFile(path string) (*domain.Config, error)
}
