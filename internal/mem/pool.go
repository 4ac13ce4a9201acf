package mem

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/hupe1980/memlat/internal/mmap"
)

// ErrPoolAlloc is returned when the word pool cannot be allocated.
var ErrPoolAlloc = errors.New("mem: pool allocation failed")

// Pool is a fixed-capacity buffer of machine words. It is allocated once,
// never resized, and owned by a single caller at a time.
type Pool struct {
	words   []uint
	mapping *mmap.Mapping // nil for heap-backed pools
}

// NewPool allocates a pool of n words. With offHeap set the words live in an
// anonymous mapping advised for random access; otherwise they come from an
// aligned heap slice.
func NewPool(n int, offHeap bool) (*Pool, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: invalid capacity %d", ErrPoolAlloc, n)
	}

	if !offHeap {
		return &Pool{words: AllocAlignedWords(n)}, nil
	}

	m, err := mmap.MapAnon(n * WordSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPoolAlloc, err)
	}
	// Advisory only.
	_ = m.AdviseRandom()

	data := m.Bytes()
	ptr := unsafe.Pointer(&data[0]) //nolint:gosec // mappings are page aligned
	return &Pool{
		words:   unsafe.Slice((*uint)(ptr), n), //nolint:gosec // see above
		mapping: m,
	}, nil
}

// Words returns the pool contents. The slice is valid until Close.
func (p *Pool) Words() []uint {
	return p.words
}

// Len returns the capacity in words.
func (p *Pool) Len() int {
	return len(p.words)
}

// Bytes returns the capacity in bytes.
func (p *Pool) Bytes() int {
	return len(p.words) * WordSize
}

// OffHeap reports whether the pool lives outside the Go heap.
func (p *Pool) OffHeap() bool {
	return p.mapping != nil
}

// Close releases the pool. It is idempotent.
func (p *Pool) Close() error {
	p.words = nil
	if p.mapping == nil {
		return nil
	}
	return p.mapping.Close()
}
