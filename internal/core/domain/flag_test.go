package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/saga/internal/core/domain"
)

func TestFlag_Normalization(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "bare word", token: "help", want: "--help"},
		{name: "already prefixed", token: "--help", want: "--help"},
		{name: "key value", token: "cores=8", want: "--cores=8"},
		{name: "prefixed key value", token: "--cores=8", want: "--cores=8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := domain.NewFlag(tt.token)
			assert.True(t, f.IsSet())
			assert.Equal(t, tt.want, f.String())
			assert.True(t, f.Equal(tt.want))
		})
	}
}

func TestFlag_ZeroValue(t *testing.T) {
	var f domain.Flag
	assert.False(t, f.IsSet())
	assert.Empty(t, f.String())
	assert.True(t, f.Equal(""))
}
