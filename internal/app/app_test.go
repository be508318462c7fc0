package app_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/saga/internal/app"
	"go.trai.ch/saga/internal/core/domain"
	"go.trai.ch/saga/internal/core/ports"
	"go.trai.ch/saga/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader   *mocks.MockConfigLoader
	executor *mocks.MockExecutor
	locator  *mocks.MockLocator
	logger   *mocks.MockLogger
	app      *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("TMPDIR", t.TempDir())

	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		locator:  mocks.NewMockLocator(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	f.app = app.New(f.loader, f.executor, f.locator, f.logger)
	return f
}

// captureCommands records every executed command and answers with a clean
// capture.
func (f *fixture) captureCommands(dst *[]domain.Command) {
	f.executor.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command, _ ports.ProgressFunc) (*domain.Capture, error) {
			*dst = append(*dst, cmd)
			return &domain.Capture{}, nil
		}).
		AnyTimes()
}

func tokenWithPrefix(t *testing.T, cmd domain.Command, prefix string) string {
	t.Helper()
	for _, tok := range cmd.Argv() {
		if strings.HasPrefix(tok, prefix) {
			return strings.TrimPrefix(tok, prefix)
		}
	}
	t.Fatalf("no token with prefix %q in %s", prefix, cmd.String())
	return ""
}

func TestApp_Run(t *testing.T) {
	t.Run("executes steps in order and resolves references", func(t *testing.T) {
		f := newFixture(t)

		plan := &domain.Plan{
			Flag: "cores=8",
			Steps: []domain.Step{
				{
					Name:    "fill",
					Library: "ta_preprocessor",
					Tool:    "5",
					Params: []domain.Param{
						{Name: "elev", Value: "dem.tif"},
						{Name: "filled", Value: "temp.sdat"},
					},
				},
				{
					Name:    "slope",
					Library: "ta_morphometry",
					Tool:    "0",
					Params: []domain.Param{
						{Name: "elevation", Value: "${fill.filled}"},
						{Name: "slope", Value: "temp.sdat"},
					},
				},
			},
		}
		f.loader.EXPECT().Load("").Return(plan, nil)
		f.locator.EXPECT().Locate("").Return(domain.ExecutablePath("/usr/bin/saga_cmd"), nil)

		var commands []domain.Command
		f.captureCommands(&commands)

		err := f.app.Run(context.Background(), app.RunOptions{})
		require.NoError(t, err)
		require.Len(t, commands, 2)

		first := commands[0].Argv()
		assert.Equal(t, "/usr/bin/saga_cmd", first[0])
		assert.Equal(t, "--cores=8", first[1])
		assert.Equal(t, "ta_preprocessor", first[2])
		assert.Equal(t, "5", first[3])

		filled := tokenWithPrefix(t, commands[0], "-FILLED=")
		assert.True(t, strings.HasSuffix(filled, ".sdat"))
		assert.NotEqual(t, "temp.sdat", filled, "placeholder must be substituted")

		elevation := tokenWithPrefix(t, commands[1], "-ELEVATION=")
		assert.Equal(t, filled, elevation, "reference resolves to the producing step's value")
	})

	t.Run("explicit saga_cmd overrides the plan", func(t *testing.T) {
		f := newFixture(t)

		plan := &domain.Plan{
			SagaCmd: "/from/plan/saga_cmd",
			Steps: []domain.Step{
				{Name: "a", Library: "lib", Tool: "0"},
			},
		}
		f.loader.EXPECT().Load("").Return(plan, nil)
		f.locator.EXPECT().Locate("/explicit/saga_cmd").
			Return(domain.ExecutablePath("/explicit/saga_cmd"), nil)

		var commands []domain.Command
		f.captureCommands(&commands)

		err := f.app.Run(context.Background(), app.RunOptions{SagaCmd: "/explicit/saga_cmd"})
		require.NoError(t, err)
		require.Len(t, commands, 1)
		assert.Equal(t, "/explicit/saga_cmd", commands[0].Argv()[0])
	})

	t.Run("forward reference fails fast", func(t *testing.T) {
		f := newFixture(t)

		plan := &domain.Plan{
			Steps: []domain.Step{
				{
					Name:    "slope",
					Library: "ta_morphometry",
					Tool:    "0",
					Params: []domain.Param{
						{Name: "elevation", Value: "${later.out}"},
					},
				},
				{Name: "later", Library: "lib", Tool: "1"},
			},
		}
		f.loader.EXPECT().Load("").Return(plan, nil)
		f.locator.EXPECT().Locate("").Return(domain.ExecutablePath("saga_cmd"), nil)

		err := f.app.Run(context.Background(), app.RunOptions{})
		assert.ErrorIs(t, err, domain.ErrStepNotFound)
	})

	t.Run("loader failure propagates", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load("").Return(nil, domain.ErrConfigNotFound)

		err := f.app.Run(context.Background(), app.RunOptions{})
		assert.ErrorIs(t, err, domain.ErrConfigNotFound)
	})

	t.Run("stage stderr aborts the run", func(t *testing.T) {
		f := newFixture(t)

		plan := &domain.Plan{
			Steps: []domain.Step{
				{Name: "a", Library: "lib", Tool: "0"},
				{Name: "b", Library: "lib", Tool: "1"},
			},
		}
		f.loader.EXPECT().Load("").Return(plan, nil)
		f.locator.EXPECT().Locate("").Return(domain.ExecutablePath("saga_cmd"), nil)

		f.executor.EXPECT().
			Run(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.Capture{Stderr: "boom"}, nil).
			Times(1)

		err := f.app.Run(context.Background(), app.RunOptions{})
		require.ErrorIs(t, err, domain.ErrStderrDetected)
		assert.ErrorIs(t, err, domain.ErrExecutionFailed)
	})
}

func TestApp_RunTool(t *testing.T) {
	f := newFixture(t)

	f.locator.EXPECT().Locate("").Return(domain.ExecutablePath("saga_cmd"), nil)

	var commands []domain.Command
	f.captureCommands(&commands)

	err := f.app.RunTool(context.Background(), app.ToolOptions{
		Library: "ta_morphometry",
		Tool:    "0",
		Flag:    "cores=8",
		Params: []domain.Param{
			{Name: "elevation", Value: "dem.tif"},
		},
	})
	require.NoError(t, err)
	require.Len(t, commands, 1)
	assert.Equal(t,
		[]string{"saga_cmd", "--cores=8", "ta_morphometry", "0", "-ELEVATION=dem.tif"},
		commands[0].Argv(),
	)
}

func TestApp_Formats(t *testing.T) {
	f := newFixture(t)
	f.locator.EXPECT().Locate("").Return(domain.ExecutablePath("saga_cmd"), nil)

	f.executor.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command, _ ports.ProgressFunc) (*domain.Capture, error) {
			argv := cmd.Argv()
			if len(argv) == 2 && argv[1] == "--version" {
				return &domain.Capture{Stdout: "SAGA Version: 8.4.1"}, nil
			}
			listing := "id\tcan\tname\n1\trw\tGeoTIFF (*.tif)\n"
			for _, tok := range argv {
				if tok == "-TYPE=1" {
					listing = "id\tcan\tname\n1\trw\tESRI Shapefile (*.shp)\n"
				}
			}
			for _, tok := range argv {
				if path, ok := strings.CutPrefix(tok, "-FORMATS="); ok {
					require.NoError(t, os.WriteFile(path, []byte(listing), 0o600))
				}
			}
			return &domain.Capture{}, nil
		}).
		Times(3)

	report, err := f.app.Formats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "8.4.1", report.Version)
	assert.Equal(t, []string{"sdat", "sg-grd-z", "sgrd", "tif"}, report.Raster)
	assert.Equal(t, []string{"shp"}, report.Vector)
}

func TestApp_Formats_OldVersionDegrades(t *testing.T) {
	f := newFixture(t)
	f.locator.EXPECT().Locate("").Return(domain.ExecutablePath("saga_cmd"), nil)

	f.executor.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Capture{Stdout: "SAGA Version: 2.1.4"}, nil).
		Times(1)

	report, err := f.app.Formats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2.1.4", report.Version)
	assert.Empty(t, report.Raster)
	assert.Empty(t, report.Vector)
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.app.Clean(context.Background()))
}
