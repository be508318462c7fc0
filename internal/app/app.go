// Package app implements the application layer for the saga CLI.
package app

import (
	"context"
	"errors"
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/saga/internal/adapters/fs"
	"go.trai.ch/saga/internal/adapters/linear"
	"go.trai.ch/saga/internal/adapters/telemetry"
	"go.trai.ch/saga/internal/core/domain"
	"go.trai.ch/saga/internal/core/ports"
	"go.trai.ch/saga/internal/engine"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	locator      ports.Locator
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	locator ports.Locator,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		locator:      locator,
		logger:       log,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// ConfigPath names the pipeline file; empty searches upward from the
	// working directory.
	ConfigPath string
	// SagaCmd overrides both the pipeline file's saga_cmd and the search.
	SagaCmd string
	// KeepTemp leaves the scratch directory in place after a successful run.
	KeepTemp bool

	Verbose      bool
	IgnoreStderr bool
	InferTypes   bool
}

// Run loads the pipeline file, builds the stage chain and executes it.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	plan, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load pipeline file")
	}

	sagaCmd := opts.SagaCmd
	if sagaCmd == "" {
		sagaCmd = plan.SagaCmd
	}

	program, shutdown, err := a.buildProgram(ctx, sagaCmd, opts.Verbose)
	if err != nil {
		return err
	}
	defer shutdown()

	if plan.Flag != "" {
		program.SetFlag(plan.Flag)
	}

	pipeline, err := buildPipeline(program, plan)
	if err != nil {
		return err
	}

	execOpts := engine.ExecOptions{
		Verbose:      opts.Verbose,
		IgnoreStderr: opts.IgnoreStderr,
		InferTypes:   opts.InferTypes,
	}
	outputs, err := pipeline.Execute(ctx, execOpts)
	if err != nil {
		return errors.Join(domain.ErrExecutionFailed, err)
	}

	a.reportFiles(outputs, opts.InferTypes)

	if !opts.KeepTemp {
		return program.Cleanup()
	}
	return nil
}

// ToolOptions configuration for the RunTool method.
type ToolOptions struct {
	SagaCmd string
	Library string
	Tool    string
	Flag    string
	Params  []domain.Param

	KeepTemp     bool
	Verbose      bool
	IgnoreStderr bool
	InferTypes   bool
}

// RunTool executes a single tool invocation assembled from CLI arguments.
func (a *App) RunTool(ctx context.Context, opts ToolOptions) error {
	program, shutdown, err := a.buildProgram(ctx, opts.SagaCmd, opts.Verbose)
	if err != nil {
		return err
	}
	defer shutdown()

	if opts.Flag != "" {
		program.SetFlag(opts.Flag)
	}

	tool, err := program.Tool(opts.Library, opts.Tool).Configure(opts.Params...)
	if err != nil {
		return err
	}

	execOpts := engine.ExecOptions{
		Verbose:      opts.Verbose,
		IgnoreStderr: opts.IgnoreStderr,
		InferTypes:   opts.InferTypes,
	}
	out, err := tool.Execute(ctx, execOpts)
	if err != nil {
		return errors.Join(domain.ErrExecutionFailed, err)
	}

	a.reportFiles([]*engine.Output{out}, opts.InferTypes)

	if !opts.KeepTemp {
		return program.Cleanup()
	}
	return nil
}

// FormatsReport is the result of the Formats inspection.
type FormatsReport struct {
	Version string
	Raster  []string
	Vector  []string
}

// Formats probes the located executable for its version and the file formats
// it can read. Executables too old for the probe report empty sets rather
// than failing.
func (a *App) Formats(ctx context.Context, sagaCmd string) (*FormatsReport, error) {
	program, shutdown, err := a.buildProgram(ctx, sagaCmd, false)
	if err != nil {
		return nil, err
	}
	defer shutdown()

	report := &FormatsReport{Version: "unknown"}

	version, err := program.Version(ctx)
	if err != nil && !errors.Is(err, domain.ErrVersionUnknown) {
		return nil, err
	}
	if !version.IsZero() {
		report.Version = version.String()
	}

	raster, err := program.RasterFormats(ctx)
	if err != nil && !errors.Is(err, domain.ErrFormatProbeUnsupported) {
		return nil, err
	}
	report.Raster = raster.Extensions()

	vector, err := program.VectorFormats(ctx)
	if err != nil && !errors.Is(err, domain.ErrFormatProbeUnsupported) {
		return nil, err
	}
	report.Vector = vector.Extensions()

	return report, nil
}

// Clean removes every scratch directory left behind by earlier runs.
func (a *App) Clean(_ context.Context) error {
	removed, err := fs.CleanupAll()
	for _, path := range removed {
		a.logger.Info("removed " + path)
	}
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		a.logger.Info("nothing to clean")
	}
	return nil
}

// buildProgram locates the executable and assembles a fully-wired Program
// with its renderer-backed tracing. The returned shutdown func flushes the
// tracer provider.
func (a *App) buildProgram(ctx context.Context, sagaCmd string, verbose bool) (*engine.Program, func(), error) {
	path, err := a.locator.Locate(sagaCmd)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to locate saga_cmd")
	}

	var renderer ports.Renderer = telemetry.NewNoopRenderer()
	if verbose {
		renderer = linear.NewRenderer(nil, nil)
	}
	provider := telemetry.NewProvider(renderer)
	shutdown := func() { shutdownProvider(ctx, provider, a.logger) }

	program := engine.NewProgram(path, a.executor, a.logger,
		engine.WithRenderer(renderer),
		engine.WithScratch(fs.NewScratch(path)),
		engine.WithExtensionResolver(fs.NewInferrer()),
	)
	return program, shutdown, nil
}

func shutdownProvider(ctx context.Context, provider *sdktrace.TracerProvider, log ports.Logger) {
	if err := provider.Shutdown(ctx); err != nil {
		log.Warn("tracer shutdown failed: " + err.Error())
	}
}

// buildPipeline turns plan steps into configured tools, resolving parameter
// references against earlier stages. Forward references fail fast.
func buildPipeline(program *engine.Program, plan *domain.Plan) (*engine.Pipeline, error) {
	var pipeline *engine.Pipeline
	built := make(map[string]*engine.Tool, len(plan.Steps))

	for _, step := range plan.Steps {
		params, err := resolveParams(step, built)
		if err != nil {
			return nil, err
		}

		tool, err := program.Tool(step.Library, step.Tool).Configure(params...)
		if err != nil {
			return nil, zerr.With(err, "step", step.Name)
		}
		built[step.Name] = tool

		if pipeline == nil {
			pipeline = engine.NewPipeline(tool)
		} else {
			pipeline.Append(tool)
		}
	}

	return pipeline, nil
}

func resolveParams(step domain.Step, built map[string]*engine.Tool) ([]domain.Param, error) {
	params := make([]domain.Param, 0, len(step.Params))
	for _, p := range step.Params {
		value, ok := p.Value.(string)
		if !ok {
			params = append(params, p)
			continue
		}

		refStep, refParam, isRef := domain.ParseRef(value)
		if !isRef {
			params = append(params, p)
			continue
		}

		source, ok := built[refStep]
		if !ok {
			err := zerr.With(domain.ErrStepNotFound, "step", step.Name)
			return nil, zerr.With(err, "reference", value)
		}
		resolved, err := source.Parameter(refParam)
		if err != nil {
			return nil, zerr.With(err, "step", step.Name)
		}
		params = append(params, domain.Param{Name: p.Name, Value: resolved})
	}
	return params, nil
}

func (a *App) reportFiles(outputs []*engine.Output, inferTypes bool) {
	if !inferTypes {
		return
	}
	for _, out := range outputs {
		for name, f := range out.Files() {
			a.logger.Info(fmt.Sprintf("%s: %s=%s (%s)", out.Target(), name, f.Path, f.Kind))
		}
	}
}
