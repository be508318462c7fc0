// Package locator finds and validates the saga_cmd executable.
package locator

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"go.trai.ch/saga/internal/core/domain"
	"go.trai.ch/saga/internal/core/ports"
	"go.trai.ch/zerr"
)

// Locator implements ports.Locator. Without an explicit path it searches the
// well-known SAGA GIS install locations of the current platform.
type Locator struct {
	logger ports.Logger

	// goos is overridable in tests.
	goos string
}

// New creates a locator for the current platform.
func New(logger ports.Logger) *Locator {
	return &Locator{logger: logger, goos: runtime.GOOS}
}

// Locate resolves the saga_cmd executable. An explicit path skips the search
// but is still validated.
func (l *Locator) Locate(explicit string) (domain.ExecutablePath, error) {
	if explicit != "" {
		if err := validate(explicit); err != nil {
			return "", err
		}
		return domain.ExecutablePath(explicit), nil
	}

	path, err := l.search()
	if err != nil {
		return "", err
	}
	l.logger.Info("found saga_cmd at " + path)
	return domain.ExecutablePath(path), nil
}

func (l *Locator) search() (string, error) {
	switch l.goos {
	case "linux":
		if path, err := exec.LookPath(executableName("linux")); err == nil {
			return path, nil
		}
		return searchDirs([]string{"/usr"}, executableName("linux"))
	case "windows":
		dirs := []string{
			`C:\Program Files\SAGA-GIS`,
			`C:\Program Files (x86)\SAGA-GIS`,
			`C:\SAGA-GIS`,
			`C:\OSGeo4W`,
			`C:\OSGeo4W64`,
		}
		return searchDirs(dirs, executableName("windows"))
	case "darwin":
		dirs := []string{
			"/Applications/SAGA.app/Contents/MacOS",
			"/usr/local/bin",
			"/Applications/QGIS.app/Contents/MacOS/bin",
		}
		return searchDirs(dirs, executableName("darwin"))
	default:
		return "", zerr.With(domain.ErrExecutableNotFound, "os", l.goos)
	}
}

func executableName(goos string) string {
	if goos == "windows" {
		return "saga_cmd.exe"
	}
	return "saga_cmd"
}

// searchDirs walks each directory tree and returns the first executable with
// the wanted name. Non-executable matches are skipped, not reported.
func searchDirs(dirs []string, name string) (string, error) {
	for _, dir := range dirs {
		var found string
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable subtrees are skipped
			}
			if d.IsDir() || d.Name() != name {
				return nil
			}
			if validate(path) != nil {
				return nil
			}
			found = path
			return fs.SkipAll
		})
		if err != nil {
			continue
		}
		if found != "" {
			return found, nil
		}
	}
	return "", domain.ErrExecutableNotFound
}

// validate checks that path names an existing, regular, executable file.
func validate(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return zerr.With(domain.ErrPathDoesNotExist, "path", path)
	}
	if err != nil {
		return zerr.Wrap(err, "failed to stat executable")
	}
	if info.IsDir() {
		return zerr.With(domain.ErrPathIsDirectory, "path", path)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return zerr.With(domain.ErrNotExecutable, "path", path)
	}
	return nil
}
