package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/saga/internal/core/domain"
	"go.trai.ch/saga/internal/core/ports"
)

// fakeScratch is an in-memory ScratchDir rooted in a test temp directory.
type fakeScratch struct {
	dir     string
	cleaned bool
}

func newFakeScratch(t *testing.T) *fakeScratch {
	t.Helper()
	return &fakeScratch{dir: t.TempDir()}
}

func (s *fakeScratch) Path() (string, error) {
	return s.dir, nil
}

func (s *fakeScratch) Files() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		files = append(files, filepath.Join(s.dir, e.Name()))
	}
	return files, nil
}

func (s *fakeScratch) Cleanup() error {
	s.cleaned = true
	return os.RemoveAll(s.dir)
}

// nopLogger discards everything; tests that assert on log calls use the
// generated mock instead.
type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

var _ ports.Logger = nopLogger{}

const testTS = 1700000000

func testClock() clockwork.Clock {
	return clockwork.NewFakeClockAt(time.Unix(testTS, 0))
}

func newTestProgram(t *testing.T, executor ports.Executor, opts ...Option) (*Program, *fakeScratch) {
	t.Helper()
	scratch := newFakeScratch(t)
	opts = append([]Option{WithScratch(scratch), WithClock(testClock())}, opts...)
	return NewProgram(domain.ExecutablePath("saga_cmd"), executor, nopLogger{}, opts...), scratch
}
