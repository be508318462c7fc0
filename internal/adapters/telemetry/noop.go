package telemetry

import (
	"time"

	"go.trai.ch/saga/internal/core/ports"
)

// NoopRenderer discards all stage events. Used when verbose output is off.
type NoopRenderer struct{}

// NewNoopRenderer returns a renderer that ignores everything.
func NewNoopRenderer() *NoopRenderer {
	return &NoopRenderer{}
}

// OnStageStart does nothing.
func (NoopRenderer) OnStageStart(string, string, time.Time) {}

// OnProgress does nothing.
func (NoopRenderer) OnProgress(string) {}

// OnStageComplete does nothing.
func (NoopRenderer) OnStageComplete(string, time.Time, error) {}

var _ ports.Renderer = NoopRenderer{}
