package locator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/saga/internal/adapters/logger"
	"go.trai.ch/saga/internal/core/ports"
)

// NodeID is the unique identifier for the locator Graft node.
const NodeID graft.ID = "adapter.locator"

func init() {
	graft.Register(graft.Node[ports.Locator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Locator, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
