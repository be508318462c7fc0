package ports

import "go.trai.ch/saga/internal/core/domain"

// Locator resolves and validates the path to the external executable.
//
//go:generate go run go.uber.org/mock/mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type Locator interface {
	// Locate returns a validated absolute path to saga_cmd. A non-empty
	// explicit path bypasses the platform search but is still validated.
	// Fails with domain.ErrPathDoesNotExist, domain.ErrNotExecutable or
	// domain.ErrExecutableNotFound.
	Locate(explicit string) (domain.ExecutablePath, error)
}
