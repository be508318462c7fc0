package ports

import "go.trai.ch/saga/internal/core/domain"

// ConfigLoader loads a pipeline plan from a definition file.
//
//go:generate go run go.uber.org/mock/mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigLoader interface {
	// Load reads the plan at path. An empty path searches for the plan file
	// upward from the working directory.
	Load(path string) (*domain.Plan, error)
}
