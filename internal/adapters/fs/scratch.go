// Package fs provides filesystem adapters: the program-private scratch
// directory and sibling-based extension inference.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/saga/internal/core/domain"
	"go.trai.ch/zerr"
)

// scratchPrefix names every scratch directory this module creates, so the
// clean command can find them later.
const scratchPrefix = "saga-scratch-"

// Scratch is the lazily-created scratch directory of one program instance.
// The directory name mixes a hash of the executable path with the pid, so
// programs in the same process and across processes stay independent.
type Scratch struct {
	root string

	mu  sync.Mutex
	dir string
}

// NewScratch creates a scratch provider for the given executable. The
// directory itself is only created on first use.
func NewScratch(exe domain.ExecutablePath) *Scratch {
	return &Scratch{root: os.TempDir(), dir: scratchName(os.TempDir(), exe)}
}

func scratchName(root string, exe domain.ExecutablePath) string {
	name := fmt.Sprintf("%s%x-%d", scratchPrefix, xxhash.Sum64String(exe.String()), os.Getpid())
	return filepath.Join(root, name)
}

// Path returns the directory, creating it on demand. A directory removed by
// an earlier Cleanup is recreated.
func (s *Scratch) Path() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", zerr.Wrap(err, domain.ErrScratchCreateFailed.Error())
	}
	return s.dir, nil
}

// Files lists the scratch files created so far. A directory that was never
// created lists as empty.
func (s *Scratch) Files() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list scratch directory")
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		files = append(files, filepath.Join(s.dir, e.Name()))
	}
	return files, nil
}

// Cleanup removes the whole directory tree.
func (s *Scratch) Cleanup() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.Wrap(err, domain.ErrScratchCleanupFailed.Error())
	}
	return nil
}

// CleanupAll removes every scratch directory this module ever created under
// the system temp directory, across processes. Returns the removed paths.
func CleanupAll() ([]string, error) {
	root := os.TempDir()
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list temp directory")
	}
	var removed []string
	for _, e := range entries {
		if !e.IsDir() || len(e.Name()) < len(scratchPrefix) || e.Name()[:len(scratchPrefix)] != scratchPrefix {
			continue
		}
		path := filepath.Join(root, e.Name())
		if err := os.RemoveAll(path); err != nil {
			return removed, zerr.With(zerr.Wrap(err, domain.ErrScratchCleanupFailed.Error()), "path", path)
		}
		removed = append(removed, path)
	}
	return removed, nil
}
