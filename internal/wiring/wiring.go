// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/saga/internal/adapters/config"
	_ "go.trai.ch/saga/internal/adapters/locator"
	_ "go.trai.ch/saga/internal/adapters/logger"
	_ "go.trai.ch/saga/internal/adapters/shell"
	// Register app nodes.
	_ "go.trai.ch/saga/internal/app"
)
