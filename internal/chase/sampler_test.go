package chase

import (
	"testing"
	"time"

	"github.com/hupe1980/memlat/internal/clock"
	"github.com/hupe1980/memlat/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampler_Run_StepClock(t *testing.T) {
	pool := make([]uint, 16)
	require.NoError(t, Build(pool, 16, 2))

	c := &testutil.StepClock{Step: 1}
	s := NewSampler(c, 10*time.Second)
	assert.Equal(t, 10*time.Second, s.Budget())

	sample, err := s.Run(pool, 16, 2)
	require.NoError(t, err)

	// Two readings to find the tick, one start reading, one per outer
	// iteration until ten seconds have passed, one final reading.
	assert.Equal(t, 10.0, sample.Steps)
	assert.Equal(t, 11.0, sample.Seconds)
	assert.Equal(t, 14, c.Reads())
}

func TestSampler_Run_Overshoot(t *testing.T) {
	pool := make([]uint, 8)
	require.NoError(t, Build(pool, 8, 1))

	// Each reading advances 3s against a 10s budget: the loop stops at 12s.
	c := &testutil.StepClock{Step: 3}
	s := NewSampler(c, 10*time.Second)

	sample, err := s.Run(pool, 8, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, sample.Steps)
	assert.Equal(t, 15.0, sample.Seconds)
}

func TestSampler_Run_ClockFailure(t *testing.T) {
	pool := make([]uint, 8)
	require.NoError(t, Build(pool, 8, 1))

	for _, after := range []int{0, 1, 2, 5} {
		s := NewSampler(&testutil.FailingClock{After: after}, time.Hour)
		_, err := s.Run(pool, 8, 1)
		assert.ErrorIs(t, err, clock.ErrClockRead, "after=%d", after)
		assert.ErrorIs(t, err, testutil.ErrClockFailed, "after=%d", after)
	}
}

func TestSampler_Run_InvalidGeometry(t *testing.T) {
	s := NewSampler(&testutil.StepClock{Step: 1}, time.Second)
	_, err := s.Run(make([]uint, 8), 16, 1)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestSampler_Calibrate_StepClock(t *testing.T) {
	c := &testutil.StepClock{Step: 1}
	s := NewSampler(c, time.Second)

	for _, steps := range []float64{0, 1, 1000} {
		overhead, err := s.Calibrate(64, 4, steps)
		require.NoError(t, err)
		assert.Equal(t, 1.0, overhead)
	}
	assert.Equal(t, 6, c.Reads())
}

func TestSampler_Calibrate_Errors(t *testing.T) {
	s := NewSampler(&testutil.FailingClock{After: 1}, time.Second)
	_, err := s.Calibrate(64, 4, 10)
	assert.ErrorIs(t, err, clock.ErrClockRead)

	_, err = s.Calibrate(64, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestSampler_RealClock(t *testing.T) {
	pool := make([]uint, 1024)
	require.NoError(t, Build(pool, 1024, 1))

	budget := 20 * time.Millisecond
	s := NewSampler(clock.Monotonic(), budget)

	sample, err := s.Run(pool, 1024, 1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sample.Steps, 1.0)
	assert.GreaterOrEqual(t, sample.Seconds, budget.Seconds())

	overhead, err := s.Calibrate(1024, 1, sample.Steps)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, overhead, 0.0)
}

func TestSampler_LatencyGrowsPastCaches(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	// A page-sized stride defeats the prefetcher and the TLB once the
	// working set is large, so the gap to an L1-resident chain is wide.
	const (
		stride = 512
		small  = 1 << 10
		large  = 1 << 22
	)
	pool := make([]uint, large)
	s := NewSampler(clock.Monotonic(), 50*time.Millisecond)

	measure := func(csize int) float64 {
		require.NoError(t, Build(pool, csize, stride))
		sample, err := s.Run(pool, csize, stride)
		require.NoError(t, err)
		overhead, err := s.Calibrate(csize, stride, sample.Steps)
		require.NoError(t, err)
		return (sample.Seconds - overhead) * 1e9 / (sample.Steps * float64(csize))
	}

	l1 := measure(small)
	mem := measure(large)
	t.Logf("stride=%d small=%.2fns large=%.2fns", stride, l1, mem)
	assert.Greater(t, mem, l1)
}

func BenchmarkSampler_Run(b *testing.B) {
	pool := make([]uint, 1<<16)
	require.NoError(b, Build(pool, len(pool), 8))
	s := NewSampler(clock.Monotonic(), time.Millisecond)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Run(pool, len(pool), 8)
	}
}
