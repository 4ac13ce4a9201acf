package chase

import (
	"fmt"
	"slices"
	"testing"

	"github.com/hupe1980/memlat/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectedLap(csize, stride int) []int {
	out := make([]int, 0, csize/stride)
	for i := 0; i < csize; i += stride {
		out = append(out, i)
	}
	return out
}

func TestBuild_VisitsEveryStrideSlotOnce(t *testing.T) {
	pool := make([]uint, 1<<12)

	for csize := 2; csize <= len(pool); csize *= 2 {
		for stride := 1; stride <= csize/2; stride *= 2 {
			require.NoError(t, Build(pool, csize, stride))

			lap := Lap(pool)
			assert.Len(t, lap, csize/stride, "csize=%d stride=%d", csize, stride)
			assert.Equal(t, expectedLap(csize, stride), lap, "csize=%d stride=%d", csize, stride)
		}
	}
}

func TestBuild_RandomGeometries(t *testing.T) {
	rng := testutil.NewRNG(4711)
	pool := make([]uint, 1<<16)

	for range 200 {
		csize, stride := rng.Geometry(2, len(pool))
		require.NoError(t, Build(pool, csize, stride))

		lap := Lap(pool)
		require.Len(t, lap, csize/stride)

		sorted := slices.Clone(lap)
		slices.Sort(sorted)
		assert.Equal(t, len(sorted), len(slices.Compact(sorted)), "duplicate index for csize=%d stride=%d", csize, stride)
		assert.Equal(t, expectedLap(csize, stride), sorted)
	}
}

func TestBuild_Boundaries(t *testing.T) {
	const minElements = 1024
	pool := make([]uint, minElements)

	require.NoError(t, Build(pool, minElements, 1))
	assert.Len(t, Lap(pool), minElements)

	require.NoError(t, Build(pool, minElements, minElements/2))
	assert.Equal(t, []int{0, minElements / 2}, Lap(pool))
}

func TestBuild_TouchesOnlyChainSlots(t *testing.T) {
	const marker = ^uint(0)
	pool := make([]uint, 64)
	for i := range pool {
		pool[i] = marker
	}

	require.NoError(t, Build(pool, 32, 4))

	for i, v := range pool {
		switch {
		case i == 28:
			assert.Equal(t, uint(0), v, "last slot holds the sentinel")
		case i < 32 && i%4 == 0:
			assert.Equal(t, uint(i+4), v)
		default:
			assert.Equal(t, marker, v, "slot %d must be untouched", i)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		poolLen, csize, stride int
		ok                     bool
	}{
		{16, 16, 1, true},
		{16, 16, 8, true},
		{16, 2, 1, true},
		{16, 16, 16, false}, // stride > csize/2
		{16, 32, 1, false},  // csize > pool
		{16, 12, 1, false},  // not a power of two
		{16, 16, 3, false},  // not a power of two
		{16, 16, 0, false},
		{16, 1, 1, false},
		{16, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("pool=%d/csize=%d/stride=%d", tt.poolLen, tt.csize, tt.stride), func(t *testing.T) {
			err := Validate(tt.poolLen, tt.csize, tt.stride)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidGeometry)
			}
		})
	}
}

func TestBuild_InvalidGeometry(t *testing.T) {
	pool := make([]uint, 8)
	assert.ErrorIs(t, Build(pool, 16, 1), ErrInvalidGeometry)
	assert.ErrorIs(t, Build(pool, 8, 8), ErrInvalidGeometry)
}

func TestLap_BrokenChain(t *testing.T) {
	assert.Nil(t, Lap(nil))

	// 1 -> 2 -> 1 never reaches the sentinel.
	pool := []uint{1, 2, 1, 0}
	assert.Len(t, Lap(pool), len(pool))

	// 1 links past the end of the pool.
	assert.NotPanics(t, func() {
		assert.Equal(t, []int{0, 1}, Lap([]uint{1, 9, 0, 0}))
	})
	assert.Equal(t, []int{0}, Lap([]uint{4, 0, 0, 0}))
}

func BenchmarkBuild(b *testing.B) {
	pool := make([]uint, 1<<20)
	for _, stride := range []int{1, 8, 512} {
		b.Run(fmt.Sprintf("stride=%d", stride), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = Build(pool, len(pool), stride)
			}
		})
	}
}
