package engine

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/saga/internal/core/domain"
	"go.trai.ch/saga/internal/core/ports"
)

// Target is an addressable invocation unit capable of producing a command line.
type Target interface {
	// Name identifies the target for error messages and verbose output.
	Name() string
	// Command assembles the full ordered token list for this invocation level.
	Command() domain.Command
}

// ScratchDir manages the program-private scratch directory where temp
// placeholders are materialized.
type ScratchDir interface {
	domain.Scratch
	// Files lists the scratch files created so far.
	Files() ([]string, error)
	// Cleanup deletes the whole directory tree. Not safe to call while an
	// invocation of the owning program is still pending.
	Cleanup() error
}

// Program is the root of a target chain: the saga_cmd executable itself.
// It owns the validated path, the current flag, the lazily-created scratch
// directory and the per-program probe caches (version and format sets).
type Program struct {
	path     domain.ExecutablePath
	flag     domain.Flag
	executor ports.Executor
	logger   ports.Logger
	renderer ports.Renderer
	scratch  ScratchDir
	infer    domain.ExtensionResolver
	clock    clockwork.Clock

	mu            sync.Mutex
	version       domain.Version
	versionProbed bool
	rasterFormats domain.FormatSet
	vectorFormats domain.FormatSet
}

// Option configures a Program.
type Option func(*Program)

// WithRenderer routes verbose progress output to the given renderer.
func WithRenderer(r ports.Renderer) Option {
	return func(p *Program) { p.renderer = r }
}

// WithScratch sets the scratch directory provider for temp placeholders.
func WithScratch(s ScratchDir) Option {
	return func(p *Program) { p.scratch = s }
}

// WithExtensionResolver sets the sibling-based extension inference.
func WithExtensionResolver(r domain.ExtensionResolver) Option {
	return func(p *Program) { p.infer = r }
}

// WithClock injects the clock used for temp-file naming.
func WithClock(c clockwork.Clock) Option {
	return func(p *Program) { p.clock = c }
}

// WithVersion presets the external tool version, skipping the version probe.
func WithVersion(v domain.Version) Option {
	return func(p *Program) {
		p.version = v
		p.versionProbed = true
	}
}

// NewProgram creates a Program for a validated executable path.
func NewProgram(path domain.ExecutablePath, executor ports.Executor, logger ports.Logger, opts ...Option) *Program {
	p := &Program{
		path:     path,
		executor: executor,
		logger:   logger,
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the executable path.
func (p *Program) Name() string {
	return p.path.String()
}

// Path returns the validated executable path.
func (p *Program) Path() domain.ExecutablePath {
	return p.path
}

// Flag returns the current flag.
func (p *Program) Flag() domain.Flag {
	return p.flag
}

// SetFlag sets the global modifier flag, normalizing the "--" prefix.
func (p *Program) SetFlag(token string) {
	p.flag = domain.NewFlag(token)
}

// ClearFlag removes the flag. Clearing an unset flag is caller misuse.
func (p *Program) ClearFlag() error {
	if !p.flag.IsSet() {
		return domain.ErrFlagNotSet
	}
	p.flag = domain.Flag{}
	return nil
}

// Command assembles "[path, flag?]". The flag token is omitted when unset.
func (p *Program) Command() domain.Command {
	return domain.NewCommand(p.path.String(), p.flag.String())
}

// Library descends to the named tool library. The child inherits the current
// flag by value: later flag changes on the program do not propagate.
func (p *Program) Library(name string) *Library {
	return &Library{program: p, name: name, flag: p.flag}
}

// Tool descends two levels at once, e.g. Tool("ta_morphometry", "0").
func (p *Program) Tool(library, tool string) *Tool {
	return p.Library(library).Tool(tool)
}

// Execute invokes the bare program (with its flag, if any). Used for
// flag-level invocations such as "--help"; stderr is ignored unless requested.
func (p *Program) Execute(ctx context.Context, opts ExecOptions) (*Output, error) {
	capture, err := p.executor.Run(ctx, p.Command(), nil)
	if err != nil {
		return nil, err
	}
	return newOutput(p.Name(), p, nil, capture, opts.IgnoreStderr)
}

// TempFiles lists the files created in the scratch directory so far. The
// files are named "{parameter}_{unixtime}{suffix}".
func (p *Program) TempFiles() ([]string, error) {
	if p.scratch == nil {
		return nil, nil
	}
	return p.scratch.Files()
}

// Cleanup deletes the scratch directory tree and logs the removed files.
// It must not be called while an invocation of this program is pending.
func (p *Program) Cleanup() error {
	if p.scratch == nil {
		return nil
	}
	files, err := p.scratch.Files()
	if err != nil {
		return err
	}
	if err := p.scratch.Cleanup(); err != nil {
		return err
	}
	for _, f := range files {
		p.logger.Info("removed scratch file: " + f)
	}
	return nil
}

// newParameters builds a parameter set bound to this program's scratch
// directory, extension inference and clock.
func (p *Program) newParameters() *domain.Parameters {
	var scratch domain.Scratch
	if p.scratch != nil {
		scratch = p.scratch
	}
	return domain.NewParameters(scratch, p.infer, p.clock)
}

// cachedFormats returns the probed format sets without triggering a probe.
// Either set may be nil when not probed yet (or probing was unsupported),
// in which case files of that family classify as generic.
func (p *Program) cachedFormats() (raster, vector domain.FormatSet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rasterFormats, p.vectorFormats
}

func (p *Program) formatsProbed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rasterFormats != nil || p.vectorFormats != nil
}

func (p *Program) progress(verbose bool) ports.ProgressFunc {
	if !verbose || p.renderer == nil {
		return nil
	}
	return p.renderer.OnProgress
}
