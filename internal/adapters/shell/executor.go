// Package shell provides the os/exec-based executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"go.trai.ch/saga/internal/core/domain"
	"go.trai.ch/saga/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec. Tokens are passed as a
// literal argument vector; nothing is ever handed to a shell.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new shell executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Run spawns the command and blocks until it exits, draining stdout and
// stderr into the capture. With a progress func, stdout is additionally
// scanned line by line while the process runs and progress-report lines
// (those containing '%') are forwarded; the captured text is unaffected.
func (e *Executor) Run(ctx context.Context, cmd domain.Command, progress ports.ProgressFunc) (*domain.Capture, error) {
	argv := cmd.Argv()
	if len(argv) == 0 {
		return nil, zerr.Wrap(domain.ErrExecutionFailed, "empty command")
	}

	//nolint:gosec // argv is an assembled invocation, not shell input
	child := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	var pw *progressWriter
	if progress != nil {
		pw = &progressWriter{fn: progress}
		child.Stdout = io.MultiWriter(&stdout, pw)
	} else {
		child.Stdout = &stdout
	}
	child.Stderr = &stderr

	err := child.Run()
	if pw != nil {
		pw.Flush()
	}

	exitCode := 0
	if err != nil {
		if ctx.Err() != nil {
			return nil, zerr.Wrap(ctx.Err(), "command canceled")
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, zerr.With(zerr.Wrap(err, "failed to execute command"), "command", cmd.String())
		}
		// saga_cmd signals tool failures via stderr, not the exit status;
		// record the code and let the caller decide.
		exitCode = exitErr.ExitCode()
		e.logger.Warn("child process exited non-zero: " + cmd.String())
	}

	return &domain.Capture{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}, nil
}

// progressWriter buffers writes into lines and forwards the ones that carry
// a percent sign. Child processes write progress as partial lines, so the
// buffer is only flushed on newlines and at process exit.
type progressWriter struct {
	fn  ports.ProgressFunc
	buf []byte
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.forward(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush forwards whatever remains in the buffer as a final line.
func (w *progressWriter) Flush() {
	if len(w.buf) > 0 {
		w.forward(w.buf)
		w.buf = nil
	}
}

func (w *progressWriter) forward(line []byte) {
	msg := strings.TrimSpace(strings.TrimSuffix(string(line), "\r"))
	if !strings.Contains(msg, "%") {
		return
	}
	w.fn(msg)
}
