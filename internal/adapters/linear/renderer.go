// Package linear provides a synchronous renderer that prints stage progress
// chronologically, suitable for terminals and CI logs alike.
package linear

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/muesli/termenv"
	"go.trai.ch/saga/internal/ui/output"
	"go.trai.ch/saga/internal/ui/style"
	"golang.org/x/term"
)

// Renderer implements ports.Renderer. Progress lines go to stdout the way
// saga_cmd emits them; stage status goes to stderr. On a terminal, running
// percentages are rewritten in place with carriage returns.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output
	isTTY  bool

	mu        sync.Mutex
	started   map[string]time.Time
	pendingCR bool
}

// NewRenderer creates a renderer on the given writers. Nil writers default
// to the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output.New(stderr),
		isTTY:   isTerminal(stdout),
		started: make(map[string]time.Time),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// OnStageStart prints the stage header.
func (r *Renderer) OnStageStart(name, header string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.started[name] = startTime
	r.flushLocked()
	if header != "" {
		_, _ = fmt.Fprint(r.stdout, header)
	}
}

// OnProgress prints a progress line. Running percentages end with a carriage
// return so the next one overwrites them; a line carrying "100" or any
// letter is final and ends with a newline. Without a terminal every line
// gets its own newline.
func (r *Renderer) OnProgress(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	end := "\n"
	if r.isTTY && !isFinal(line) {
		end = "\r"
	}
	r.pendingCR = end == "\r"
	_, _ = fmt.Fprint(r.stdout, line+end)
}

// OnStageComplete prints the stage outcome with its duration.
func (r *Renderer) OnStageComplete(name string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flushLocked()

	started, ok := r.started[name]
	if !ok {
		return
	}
	delete(r.started, name)
	duration := endTime.Sub(started).Round(time.Millisecond)

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.RGBColor(style.Red)).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s failed after %v: %v\n", symbol, name, duration, err)
		return
	}
	symbol := r.output.String(style.Check).Foreground(termenv.RGBColor(style.Green)).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s completed in %v\n", symbol, name, duration)
}

// flushLocked terminates a carriage-returned progress line so following
// output starts on a fresh one.
func (r *Renderer) flushLocked() {
	if !r.pendingCR {
		return
	}
	r.pendingCR = false
	_, _ = fmt.Fprint(r.stdout, "\n")
}

// isFinal reports whether a progress line will not be overwritten: either it
// reached 100 or it carries prose rather than a bare percentage.
func isFinal(line string) bool {
	if strings.Contains(line, "100") {
		return true
	}
	return strings.ContainsFunc(line, unicode.IsLetter)
}
