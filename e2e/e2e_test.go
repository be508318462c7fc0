//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var sagaBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "saga-e2e-*")
	if err != nil {
		panic(err)
	}

	sagaBinary = filepath.Join(tmpDir, "saga")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", sagaBinary, "./cmd/saga")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build saga binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")

	binDir := filepath.Dir(sagaBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	// Keep scratch directories inside the script's work dir.
	tmpDir := filepath.Join(env.WorkDir, ".tmp")
	if err := os.MkdirAll(tmpDir, 0o750); err != nil {
		return err
	}
	env.Setenv("TMPDIR", tmpDir)

	return nil
}
