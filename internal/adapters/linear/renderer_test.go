package linear

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var stdout, stderr bytes.Buffer
	return NewRenderer(&stdout, &stderr), &stdout, &stderr
}

func TestRenderer_StageLifecycle(t *testing.T) {
	r, stdout, stderr := newTestRenderer(t)
	start := time.Now()

	header := "-------------------------\nta_morphometry / 0\n    -ELEVATION=dem.tif\n"
	r.OnStageStart("ta_morphometry / 0", header, start)
	r.OnProgress("12%")
	r.OnProgress("100%")
	r.OnStageComplete("ta_morphometry / 0", start.Add(1500*time.Millisecond), nil)

	assert.Equal(t, header+"12%\n100%\n", stdout.String())
	assert.Contains(t, stderr.String(), "✓ ta_morphometry / 0 completed in 1.5s")
}

func TestRenderer_FailedStage(t *testing.T) {
	r, _, stderr := newTestRenderer(t)
	start := time.Now()

	r.OnStageStart("ta / 0", "", start)
	r.OnStageComplete("ta / 0", start.Add(20*time.Millisecond), errors.New("stderr detected"))

	out := stderr.String()
	assert.Contains(t, out, "✗ ta / 0 failed after 20ms")
	assert.Contains(t, out, "stderr detected")
}

func TestRenderer_UnknownStageCompleteIsIgnored(t *testing.T) {
	r, _, stderr := newTestRenderer(t)
	r.OnStageComplete("never started", time.Now(), nil)
	assert.Empty(t, stderr.String())
}

func TestRenderer_NonTTYAlwaysNewlines(t *testing.T) {
	r, stdout, _ := newTestRenderer(t)
	require.False(t, r.isTTY)

	r.OnProgress("12%")
	r.OnProgress("47%")
	assert.Equal(t, "12%\n47%\n", stdout.String())
}

func TestIsFinal(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{line: "12%", want: false},
		{line: " 99% ", want: false},
		{line: "100%", want: true},
		{line: "ready: 55%", want: true},
		{line: "Load grid... 10%", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, isFinal(tt.line))
		})
	}
}
