// Package telemetry bridges OpenTelemetry spans to the renderer port.
package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/saga/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor, forwarding span lifecycle events
// to a Renderer so stage output stays in sync with tracing.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a new Bridge.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart forwards span start as a stage start.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return
	}

	var header string
	for _, attr := range s.Attributes() {
		if string(attr.Key) == ports.StageHeaderAttr {
			header = attr.Value.AsString()
			break
		}
	}

	b.renderer.OnStageStart(s.Name(), header, s.StartTime())
}

// OnEnd forwards span end as a stage completion.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "stage failed"
		}
		err = errors.New(desc)
	}

	b.renderer.OnStageComplete(s.Name(), s.EndTime(), err)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
