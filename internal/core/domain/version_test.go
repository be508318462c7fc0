package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/saga/internal/core/domain"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    domain.Version
		wantErr bool
	}{
		{
			name: "typical banner",
			text: "SAGA Version: 8.4.1 (64 bit)\n",
			want: domain.Version{Major: 8, Minor: 4, Patch: 1},
		},
		{
			name: "triple buried in text",
			text: "____\nSAGA command line interface\nversion 7.3.0, compiled",
			want: domain.Version{Major: 7, Minor: 3, Patch: 0},
		},
		{
			name: "first triple wins",
			text: "2.3.1 and later 9.9.9",
			want: domain.Version{Major: 2, Minor: 3, Patch: 1},
		},
		{
			name:    "no triple",
			text:    "no version here",
			wantErr: true,
		},
		{
			name:    "incomplete triple",
			text:    "version 8.4",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseVersion(tt.text)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrVersionUnknown)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersion_AtLeast(t *testing.T) {
	v := domain.Version{Major: 4, Minor: 2, Patch: 1}

	assert.True(t, v.AtLeast(4, 0, 0))
	assert.True(t, v.AtLeast(4, 2, 1))
	assert.True(t, v.AtLeast(3, 9, 9))
	assert.False(t, v.AtLeast(4, 2, 2))
	assert.False(t, v.AtLeast(4, 3, 0))
	assert.False(t, v.AtLeast(5, 0, 0))
}

func TestVersion_String(t *testing.T) {
	assert.Equal(t, "8.4.1", domain.Version{Major: 8, Minor: 4, Patch: 1}.String())
}
