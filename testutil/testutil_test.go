package testutil

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepClock(t *testing.T) {
	c := &StepClock{Now: 10, Step: 0.5}

	for _, want := range []float64{10, 10.5, 11, 11.5} {
		v, err := c.Seconds()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	assert.Equal(t, 4, c.Reads())
}

func TestFailingClock(t *testing.T) {
	c := &FailingClock{After: 3}

	for want := range 3 {
		v, err := c.Seconds()
		require.NoError(t, err)
		assert.Equal(t, float64(want), v)
	}

	_, err := c.Seconds()
	assert.ErrorIs(t, err, ErrClockFailed)
}

func TestScriptClock(t *testing.T) {
	c := &ScriptClock{Deltas: []float64{1, 10}}

	for _, want := range []float64{0, 1, 11, 12, 22} {
		v, err := c.Seconds()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

func TestParseGrid(t *testing.T) {
	out := ",   8B,  16B,\n  64B,   1.5,   0.1,\n 128B,   2.0,  12.3,\n"

	g, err := ParseGrid(out)
	require.NoError(t, err)

	assert.Equal(t, []string{"8B", "16B"}, g.Header)
	require.Len(t, g.Rows, 2)
	assert.Equal(t, Row{Label: "64B", Values: []float64{1.5, 0.1}}, g.Rows[0])
	assert.Equal(t, Row{Label: "128B", Values: []float64{2.0, 12.3}}, g.Rows[1])
}

func TestParseGrid_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":            "",
		"no leading":       "8B,\n",
		"unterminated":     ",8B\n",
		"bad value":        ",8B,\n64B,abc,\n",
		"row unterminated": ",8B,\n64B,1.0\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseGrid(in)
			assert.Error(t, err)
		})
	}
}

func TestRNG_Geometry(t *testing.T) {
	rng := NewRNG(4711)
	assert.Equal(t, int64(4711), rng.Seed())

	for range 1000 {
		csize, stride := rng.Geometry(8, 1<<12)
		assert.Equal(t, 1, bits.OnesCount(uint(csize)))
		assert.Equal(t, 1, bits.OnesCount(uint(stride)))
		assert.GreaterOrEqual(t, csize, 8)
		assert.LessOrEqual(t, csize, 1<<12)
		assert.GreaterOrEqual(t, stride, 1)
		assert.LessOrEqual(t, stride, csize/2)
	}
}
