package chase

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrInvalidGeometry is returned when a working-set size and stride cannot
// form a chain in the given pool.
var ErrInvalidGeometry = errors.New("chase: invalid chain geometry")

// Validate checks that csize and stride are powers of two with
// 1 <= stride <= csize/2 and csize <= poolLen.
func Validate(poolLen, csize, stride int) error {
	switch {
	case csize < 2 || !isPow2(csize):
		return fmt.Errorf("%w: csize %d is not a power of two >= 2", ErrInvalidGeometry, csize)
	case stride < 1 || !isPow2(stride):
		return fmt.Errorf("%w: stride %d is not a power of two", ErrInvalidGeometry, stride)
	case stride > csize/2:
		return fmt.Errorf("%w: stride %d exceeds csize/2 (%d)", ErrInvalidGeometry, stride, csize/2)
	case csize > poolLen:
		return fmt.Errorf("%w: csize %d exceeds pool of %d words", ErrInvalidGeometry, csize, poolLen)
	}
	return nil
}

func isPow2(n int) bool {
	return n > 0 && bits.OnesCount(uint(n)) == 1
}

// Build writes the chain for (csize, stride) into pool.
func Build(pool []uint, csize, stride int) error {
	if err := Validate(len(pool), csize, stride); err != nil {
		return err
	}

	i := 0
	for ; i < csize; i += stride {
		pool[i] = uint(i + stride)
	}
	pool[i-stride] = 0 // loop back

	return nil
}

// Lap follows the chain in pool from index 0 until the sentinel and returns
// the visited indices in order. It stops at a link that leaves the pool and
// after len(pool) hops, so a broken chain yields a truncated result instead
// of panicking or spinning forever.
func Lap(pool []uint) []int {
	if len(pool) == 0 {
		return nil
	}

	visited := []int{0}
	next := pool[0]
	for next != 0 && next < uint(len(pool)) && len(visited) < len(pool) {
		visited = append(visited, int(next))
		next = pool[next]
	}
	return visited
}
