package engine

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/saga/internal/core/domain"
)

// Output associates one completed invocation with the parameter set that
// produced it. It is immutable after construction; the file views are
// computed lazily and cached on first access.
type Output struct {
	target  string
	program *Program
	params  *domain.Parameters
	capture *domain.Capture

	once  sync.Once
	files map[string]domain.File
}

// newOutput wraps a capture. A non-empty (whitespace-trimmed) stderr fails
// construction with an ExecutionError unless the caller opted to ignore it.
func newOutput(
	target string,
	program *Program,
	params *domain.Parameters,
	capture *domain.Capture,
	ignoreStderr bool,
) (*Output, error) {
	if stderr := strings.TrimSpace(capture.Stderr); stderr != "" && !ignoreStderr {
		return nil, &domain.ExecutionError{Target: target, Stderr: stderr}
	}
	return &Output{
		target:  target,
		program: program,
		params:  params,
		capture: capture,
	}, nil
}

// Target identifies the invocation that produced this output.
func (o *Output) Target() string {
	return o.target
}

// Stdout returns the captured standard output text.
func (o *Output) Stdout() string {
	return o.capture.Stdout
}

// Stderr returns the captured standard error text.
func (o *Output) Stderr() string {
	return o.capture.Stderr
}

// ExitCode returns the child process exit code.
func (o *Output) ExitCode() int {
	return o.capture.ExitCode
}

// Files maps each parameter whose resolved value names an existing regular
// file to that file, classified by extension against the program's cached
// format sets. Parameters pointing at non-existent paths are absent. The
// classification never triggers a probe: with no cached format sets every
// file reports as generic.
func (o *Output) Files() map[string]domain.File {
	o.once.Do(func() {
		o.files = o.collectFiles()
	})
	return o.files
}

// Rasters returns the subset of Files classified as raster.
func (o *Output) Rasters() map[string]domain.File {
	return o.filesOfKind(domain.KindRaster)
}

// Vectors returns the subset of Files classified as vector.
func (o *Output) Vectors() map[string]domain.File {
	return o.filesOfKind(domain.KindVector)
}

func (o *Output) filesOfKind(kind domain.FileKind) map[string]domain.File {
	out := make(map[string]domain.File)
	for name, f := range o.Files() {
		if f.Kind == kind {
			out[name] = f
		}
	}
	return out
}

func (o *Output) collectFiles() map[string]domain.File {
	files := make(map[string]domain.File)
	if o.params == nil {
		return files
	}
	raster, vector := o.program.cachedFormats()
	for _, name := range o.params.Names() {
		value, _ := o.params.Get(name)
		info, err := os.Stat(value)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files[name] = domain.File{
			Path: value,
			Kind: classify(filepath.Ext(value), raster, vector),
		}
	}
	return files
}

func classify(ext string, raster, vector domain.FormatSet) domain.FileKind {
	switch {
	case raster != nil && raster.Has(ext):
		return domain.KindRaster
	case vector != nil && vector.Has(ext):
		return domain.KindVector
	default:
		return domain.KindGeneric
	}
}
