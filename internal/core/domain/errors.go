package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrPathDoesNotExist is returned when a given executable path does not exist.
	ErrPathDoesNotExist = zerr.New("path does not exist")

	// ErrPathIsDirectory is returned when an executable path points to a directory.
	ErrPathIsDirectory = zerr.New("path points to a directory, not a file")

	// ErrNotExecutable is returned when a file exists but cannot be executed.
	ErrNotExecutable = zerr.New("file is not executable")

	// ErrExecutableNotFound is returned when the platform search finds no executable.
	ErrExecutableNotFound = zerr.New("could not find saga_cmd, provide an explicit path")

	// ErrFlagNotSet is returned when clearing a flag that was never set.
	ErrFlagNotSet = zerr.New("flag is not set")

	// ErrParameterNotSet is returned when reading a parameter that was never assigned.
	ErrParameterNotSet = zerr.New("parameter is not set")

	// ErrStderrDetected is returned when an invocation wrote to standard error
	// and the caller did not opt to ignore it.
	ErrStderrDetected = zerr.New("stderr detected during execution")

	// ErrVersionUnknown is returned when the version probe cannot parse a version.
	ErrVersionUnknown = zerr.New("could not parse saga_cmd version")

	// ErrFormatProbeUnsupported is returned when the installed tool is too old
	// to report its supported formats.
	ErrFormatProbeUnsupported = zerr.New("format probe requires saga_cmd >= 4.0.0")

	// ErrFormatProbeFailed is returned when the format listing cannot be parsed.
	ErrFormatProbeFailed = zerr.New("failed to parse format listing")

	// ErrScratchCreateFailed is returned when the scratch directory cannot be created.
	ErrScratchCreateFailed = zerr.New("failed to create scratch directory")

	// ErrScratchCleanupFailed is returned when the scratch directory cannot be removed.
	ErrScratchCleanupFailed = zerr.New("failed to remove scratch directory")

	// ErrConfigNotFound is returned when no pipeline file can be found.
	ErrConfigNotFound = zerr.New("could not find pipeline file")

	// ErrConfigReadFailed is returned when the pipeline file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read pipeline file")

	// ErrConfigParseFailed is returned when the pipeline file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse pipeline file")

	// ErrNoStepsDefined is returned when a pipeline file declares no steps.
	ErrNoStepsDefined = zerr.New("pipeline file declares no steps")

	// ErrDuplicateStepName is returned when two pipeline steps share a name.
	ErrDuplicateStepName = zerr.New("duplicate step name")

	// ErrStepNotFound is returned when a step reference names an unknown or
	// later step. References may only point at steps declared earlier.
	ErrStepNotFound = zerr.New("referenced step not found")

	// ErrExecutionFailed is returned when spawning the child process fails.
	ErrExecutionFailed = zerr.New("failed to execute command")
)

// ExecutionError reports that a completed invocation produced output on
// standard error. It carries the identity of the target that failed and the
// raw stderr text so callers can surface both.
type ExecutionError struct {
	// Target identifies the invocation, e.g. "ta_preprocessor / 0".
	Target string
	// Stderr is the captured standard error text, whitespace-trimmed.
	Stderr string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf(
		"stderr detected after executing %q:\n%s\n(set ignore-stderr to suppress this error)",
		e.Target, e.Stderr,
	)
}

// Unwrap makes errors.Is(err, ErrStderrDetected) hold for ExecutionError.
func (e *ExecutionError) Unwrap() error {
	return ErrStderrDetected
}
