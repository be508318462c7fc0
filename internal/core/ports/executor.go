// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/saga/internal/core/domain"
)

// ProgressFunc receives one qualifying stdout line at a time while the child
// process runs. It is an observability aid only: captured output is unaffected.
type ProgressFunc func(line string)

// Executor spawns child processes from assembled commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run spawns the command's argv (no shell interpretation), blocks until
	// the process exits and returns its drained stdout/stderr. A non-nil
	// progress func receives progress-report lines (those containing '%')
	// as they are produced.
	//
	// A non-zero exit status is not an error; it is recorded in the capture.
	// Run fails only when the process cannot be spawned or the context ends.
	Run(ctx context.Context, cmd domain.Command, progress ProgressFunc) (*domain.Capture, error)
}
