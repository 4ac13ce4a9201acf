// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides 64-byte aligned allocation so heap-backed buffers start on a
// cache-line boundary.
//
// # Word Pool
//
// Pool is the explicitly owned buffer pointer chains are written into. It is
// sized once for the largest working set and reused for every trial, so no
// trial allocates.
package mem
