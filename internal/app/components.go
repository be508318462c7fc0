package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/saga/internal/adapters/config"
	"go.trai.ch/saga/internal/adapters/locator"
	"go.trai.ch/saga/internal/adapters/logger"
	"go.trai.ch/saga/internal/adapters/shell"
	"go.trai.ch/saga/internal/core/ports"
)

// Components bundles the resolved application graph for the CLI entry point.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the components Graft node.
const NodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, shell.NodeID, locator.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			finder, err := graft.Dep[ports.Locator](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{
				App:    New(loader, executor, finder, log),
				Logger: log,
			}, nil
		},
	})
}
