// Package mmap provides anonymous memory mappings for off-heap buffers.
//
// # Overview
//
// The profiler's word pool can be hundreds of megabytes. Mapping it outside
// the Go heap keeps it away from the garbage collector's scan and mark work,
// which would otherwise perturb latency measurements, and lets the kernel be
// told that accesses will be random.
//
// # Usage
//
//	m, err := mmap.MapAnon(128 << 20)
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.AdviseRandom()
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON and madvise(2)
//   - Windows: VirtualAlloc (AdviseRandom is a no-op)
//
// # Thread Safety
//
// Close is idempotent and protected by atomic operations. Callers must ensure
// no goroutine uses Bytes() after Close() returns.
package mmap
