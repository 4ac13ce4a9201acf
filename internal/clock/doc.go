// Package clock reads a monotonic time source as floating-point seconds.
//
// # Platform Support
//
//   - Linux, macOS, FreeBSD: clock_gettime(CLOCK_MONOTONIC) via golang.org/x/sys/unix
//   - Others: the monotonic reading carried by time.Now, relative to process start
//
// Readings have nanosecond granularity on the first group of platforms, which
// is fine enough to tell sub-millisecond intervals apart.
package clock
