package engine

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/saga/internal/core/domain"
	"go.trai.ch/saga/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const tracerName = "go.trai.ch/saga/internal/engine"

// ExecOptions controls one invocation.
type ExecOptions struct {
	// Verbose streams progress-report lines to the renderer while the child
	// process runs and announces each pipeline stage before it executes.
	Verbose bool
	// IgnoreStderr suppresses the ExecutionError normally raised when the
	// child process writes to standard error.
	IgnoreStderr bool
	// InferTypes enables the one-time format/version warm-up so result files
	// can be classified as raster or vector. Probing is opt-in and cached
	// for the lifetime of the owning program.
	InferTypes bool
}

// Tool is one invocable tool inside a library. It owns the parameter set of
// the next invocation and references its parent library by pointer.
type Tool struct {
	library *Library
	name    string
	flag    domain.Flag
	params  *domain.Parameters
}

// Name returns the tool name.
func (t *Tool) Name() string {
	return t.name
}

// Library returns the owning library.
func (t *Tool) Library() *Library {
	return t.library
}

// Identity renders "library / tool" for errors and verbose output.
func (t *Tool) Identity() string {
	return t.library.name + " / " + t.name
}

// Flag returns the current flag.
func (t *Tool) Flag() domain.Flag {
	return t.flag
}

// SetFlag sets the flag for this tool only.
func (t *Tool) SetFlag(token string) {
	t.flag = domain.NewFlag(token)
}

// ClearFlag removes the flag. Clearing an unset flag is caller misuse.
func (t *Tool) ClearFlag() error {
	if !t.flag.IsSet() {
		return domain.ErrFlagNotSet
	}
	t.flag = domain.Flag{}
	return nil
}

// Configure replaces the tool's entire parameter set with the given
// name/value pairs, in order. Values are coerced to strings and the temp
// placeholder and extension inference rules apply at assignment time.
// It returns the tool to allow chaining into a pipeline.
func (t *Tool) Configure(params ...domain.Param) (*Tool, error) {
	fresh := t.library.program.newParameters()
	for _, p := range params {
		if err := fresh.Set(p.Name, p.Value); err != nil {
			return nil, zerr.With(err, "parameter", p.Name)
		}
	}
	t.params = fresh
	return t, nil
}

// Parameter returns the resolved (post-substitution) value of a previously
// assigned parameter. Later pipeline stages use this to consume the files an
// earlier stage declared. Reading an unassigned parameter fails fast.
func (t *Tool) Parameter(name string) (string, error) {
	v, ok := t.params.Get(name)
	if !ok {
		return "", zerr.With(zerr.With(domain.ErrParameterNotSet, "parameter", name), "tool", t.Identity())
	}
	return v, nil
}

// Parameters exposes the current parameter set.
func (t *Tool) Parameters() *domain.Parameters {
	return t.params
}

// Command assembles "[path, flag?, library, tool, -NAME=value...]".
func (t *Tool) Command() domain.Command {
	tokens := []string{
		t.library.program.path.String(),
		t.flag.String(),
		t.library.name,
		t.name,
	}
	tokens = append(tokens, t.params.Formatted()...)
	return domain.NewCommand(tokens...)
}

// Pipe chains this tool with the next one into a new pipeline.
func (t *Tool) Pipe(next *Tool) *Pipeline {
	return NewPipeline(t).Append(next)
}

// VerboseHeader renders the stage announcement printed before execution.
func (t *Tool) VerboseHeader() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("-", 25))
	b.WriteString("\n")
	b.WriteString(t.Identity())
	b.WriteString("\n")
	b.WriteString("    ")
	b.WriteString(t.params.String())
	b.WriteString("\n")
	return b.String()
}

// Execute runs the tool and wraps the capture into an Output.
//
// When InferTypes is set and the format sets are not cached yet, the version
// and format probes run concurrently with the invocation itself; probe
// failures degrade to "unknown" with a warning and never fail the invocation.
func (t *Tool) Execute(ctx context.Context, opts ExecOptions) (*Output, error) {
	program := t.library.program

	ctx, span := otel.Tracer(tracerName).Start(ctx, t.Identity(),
		trace.WithAttributes(attribute.String(ports.StageHeaderAttr, t.VerboseHeader())))

	capture, err := t.runWithWarmup(ctx, opts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return nil, err
	}

	out, err := newOutput(t.Identity(), program, t.params, capture, opts.IgnoreStderr)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return nil, err
	}
	span.End()
	return out, nil
}

func (t *Tool) runWithWarmup(ctx context.Context, opts ExecOptions) (*domain.Capture, error) {
	program := t.library.program

	if !opts.InferTypes || program.formatsProbed() {
		return t.run(ctx, opts)
	}

	var capture *domain.Capture
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := program.RasterFormats(gctx); err != nil {
			program.logger.Warn("raster format probe skipped: " + err.Error())
		}
		return nil
	})
	g.Go(func() error {
		if _, err := program.VectorFormats(gctx); err != nil {
			program.logger.Warn("vector format probe skipped: " + err.Error())
		}
		return nil
	})
	g.Go(func() error {
		c, err := t.run(gctx, opts)
		if err != nil {
			return err
		}
		capture = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return capture, nil
}

func (t *Tool) run(ctx context.Context, opts ExecOptions) (*domain.Capture, error) {
	program := t.library.program
	capture, err := program.executor.Run(ctx, t.Command(), program.progress(opts.Verbose))
	if err != nil {
		return nil, zerr.With(err, "target", t.Identity())
	}
	return capture, nil
}
