package ports

import "time"

// StageHeaderAttr is the span attribute carrying the rendered stage header
// from the engine to whoever drives a Renderer.
const StageHeaderAttr = "saga.stage.header"

// Renderer is the abstraction for user-facing progress output. It decouples
// the engine and the telemetry bridge from presentation so the same event
// stream can drive the verbose console renderer or be discarded entirely.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnStageStart is called before a pipeline stage executes.
	// header is the rendered stage description (library / tool / parameters).
	OnStageStart(name, header string, startTime time.Time)

	// OnProgress is called for each progress-report line a running child
	// process emits on stdout.
	OnProgress(line string)

	// OnStageComplete is called when a stage finishes. err is nil on success.
	OnStageComplete(name string, endTime time.Time, err error)
}
