package telemetry

import (
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/saga/internal/core/ports"
)

// NewProvider builds a tracer provider whose spans drive the given renderer
// and installs it as the global provider. Callers own Shutdown.
func NewProvider(renderer ports.Renderer) *sdktrace.TracerProvider {
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewBridge(renderer)),
	)
	otel.SetTracerProvider(provider)
	return provider
}
