package ports

import "go.trai.ch/cpinfer/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path, resolving relative entries against cwd.
	Load(cwd, path string) (*domain.Workspace, error)
}
