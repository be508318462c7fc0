package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/saga/internal/core/domain"
	"go.trai.ch/saga/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestPipeline_ExecutesStagesInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	program, _ := newTestProgram(t, executor)

	first, err := program.Tool("ta_preprocessor", "2").Configure(
		domain.Param{Name: "dem", Value: "dem.tif"},
	)
	require.NoError(t, err)
	second, err := program.Tool("ta_morphometry", "0").Configure(
		domain.Param{Name: "elevation", Value: "filled.sdat"},
	)
	require.NoError(t, err)

	gomock.InOrder(
		executor.EXPECT().
			Run(gomock.Any(), first.Command(), gomock.Any()).
			Return(&domain.Capture{Stdout: "first"}, nil),
		executor.EXPECT().
			Run(gomock.Any(), second.Command(), gomock.Any()).
			Return(&domain.Capture{Stdout: "second"}, nil),
	)

	outputs, err := first.Pipe(second).Execute(context.Background(), ExecOptions{})
	require.NoError(t, err)
	require.Len(t, outputs, 2)
	assert.Equal(t, "first", outputs[0].Stdout())
	assert.Equal(t, "second", outputs[1].Stdout())
}

func TestPipeline_AbortsOnStderr(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	program, _ := newTestProgram(t, executor)

	first, err := program.Tool("ta_preprocessor", "2").Configure(nil...)
	require.NoError(t, err)
	second, err := program.Tool("ta_morphometry", "0").Configure(nil...)
	require.NoError(t, err)

	// Only the first stage runs; its stderr aborts the chain.
	executor.EXPECT().
		Run(gomock.Any(), first.Command(), gomock.Any()).
		Return(&domain.Capture{Stderr: "boom"}, nil)

	outputs, err := first.Pipe(second).Execute(context.Background(), ExecOptions{})
	require.ErrorIs(t, err, domain.ErrStderrDetected)
	assert.Nil(t, outputs)
}

func TestPipeline_AppendChains(t *testing.T) {
	program, _ := newTestProgram(t, nil)
	a := program.Tool("lib", "0")
	b := program.Tool("lib", "1")
	c := program.Tool("lib", "2")

	pipeline := a.Pipe(b).Append(c)
	assert.Equal(t, 3, pipeline.Len())
}

func TestPipeline_String(t *testing.T) {
	program, _ := newTestProgram(t, nil)
	first, err := program.Tool("ta_preprocessor", "2").Configure(
		domain.Param{Name: "dem", Value: "dem.tif"},
	)
	require.NoError(t, err)
	second := program.Tool("ta_morphometry", "0")

	s := first.Pipe(second).String()
	assert.Contains(t, s, "ta_preprocessor / 2")
	assert.Contains(t, s, "-DEM=dem.tif")
	assert.Contains(t, s, "ta_morphometry / 0")
}
