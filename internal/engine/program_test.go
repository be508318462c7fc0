package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/saga/internal/core/domain"
)

func TestProgram_CommandShapes(t *testing.T) {
	program, _ := newTestProgram(t, nil)

	t.Run("bare program", func(t *testing.T) {
		assert.Equal(t, []string{"saga_cmd"}, program.Command().Argv())
	})

	t.Run("with flag", func(t *testing.T) {
		program.SetFlag("cores=8")
		defer func() { require.NoError(t, program.ClearFlag()) }()

		assert.Equal(t, []string{"saga_cmd", "--cores=8"}, program.Command().Argv())
	})

	t.Run("library level", func(t *testing.T) {
		lib := program.Library("ta_morphometry")
		assert.Equal(t, []string{"saga_cmd", "ta_morphometry"}, lib.Command().Argv())
	})

	t.Run("tool level", func(t *testing.T) {
		tool, err := program.Tool("ta_morphometry", "0").Configure(
			domain.Param{Name: "elevation", Value: "dem.tif"},
			domain.Param{Name: "method", Value: 1},
		)
		require.NoError(t, err)

		assert.Equal(t,
			[]string{"saga_cmd", "ta_morphometry", "0", "-ELEVATION=dem.tif", "-METHOD=1"},
			tool.Command().Argv(),
		)
	})
}

func TestProgram_FlagIsCopiedDownward(t *testing.T) {
	program, _ := newTestProgram(t, nil)
	program.SetFlag("cores=8")

	lib := program.Library("ta_morphometry")
	tool := lib.Tool("0")

	// Changing the parent after construction must not leak into children.
	program.SetFlag("cores=2")
	require.NoError(t, lib.ClearFlag())

	assert.True(t, program.Flag().Equal("--cores=2"))
	assert.False(t, lib.Flag().IsSet())
	assert.True(t, tool.Flag().Equal("--cores=8"))
	assert.Equal(t,
		[]string{"saga_cmd", "--cores=8", "ta_morphometry", "0"},
		tool.Command().Argv(),
	)
}

func TestProgram_ClearFlag_Unset(t *testing.T) {
	program, _ := newTestProgram(t, nil)
	assert.ErrorIs(t, program.ClearFlag(), domain.ErrFlagNotSet)

	lib := program.Library("ta_morphometry")
	assert.ErrorIs(t, lib.ClearFlag(), domain.ErrFlagNotSet)

	tool := lib.Tool("0")
	assert.ErrorIs(t, tool.ClearFlag(), domain.ErrFlagNotSet)
}

func TestProgram_TempPlaceholderUsesScratch(t *testing.T) {
	program, scratch := newTestProgram(t, nil)

	tool, err := program.Tool("ta_morphometry", "0").Configure(
		domain.Param{Name: "elevation", Value: "dem.tif"},
		domain.Param{Name: "slope", Value: "temp.sdat"},
	)
	require.NoError(t, err)

	slope, err := tool.Parameter("slope")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(scratch.dir, "slope_1700000000.sdat"), slope)
}

func TestProgram_Cleanup(t *testing.T) {
	program, scratch := newTestProgram(t, nil)

	_, err := program.Tool("ta_morphometry", "0").Configure(
		domain.Param{Name: "slope", Value: "temp.sdat"},
	)
	require.NoError(t, err)

	require.NoError(t, program.Cleanup())
	assert.True(t, scratch.cleaned)
}

func TestProgram_TempFiles_NoScratch(t *testing.T) {
	program := NewProgram(domain.ExecutablePath("saga_cmd"), nil, nopLogger{})

	files, err := program.TempFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.NoError(t, program.Cleanup())
}
