// Package mem provides memory allocation utilities.
package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of heap-backed buffers (one cache line).
const Alignment = 64

// WordSize is the size of one pool element in bytes.
const WordSize = int(unsafe.Sizeof(uint(0)))

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	// Allocate size + alignment to ensure we can find an aligned offset
	totalSize := size + Alignment
	buf := make([]byte, totalSize)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size)]
}

// AllocAlignedWords allocates a word slice of length n whose first element
// starts on a cache-line boundary.
func AllocAlignedWords(n int) []uint {
	if n <= 0 {
		return nil
	}

	byteSlice := AllocAligned(n * WordSize)

	// 64-byte alignment implies word alignment.
	ptr := unsafe.Pointer(&byteSlice[0]) //nolint:gosec // unsafe is required for memory alignment
	return unsafe.Slice((*uint)(ptr), n) //nolint:gosec // unsafe is required for memory alignment
}
