package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/saga/internal/core/domain"
)

func TestFormatSet_Normalization(t *testing.T) {
	set := domain.NewFormatSet(".TIF", " sdat", "sg-grd-z", "", ".")

	assert.Equal(t, []string{"sdat", "sg-grd-z", "tif"}, set.Extensions())
	assert.True(t, set.Has("tif"))
	assert.True(t, set.Has(".tif"))
	assert.True(t, set.Has(".TIF"))
	assert.False(t, set.Has("shp"))
}

func TestFormatSet_EmptyClassifiesNothing(t *testing.T) {
	set := domain.NewFormatSet()
	assert.False(t, set.Has(".tif"))
	assert.Empty(t, set.Extensions())
}

func TestFileKind_String(t *testing.T) {
	assert.Equal(t, "raster", domain.KindRaster.String())
	assert.Equal(t, "vector", domain.KindVector.String())
	assert.Equal(t, "generic", domain.KindGeneric.String())
}
