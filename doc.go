// Package memlat measures memory-hierarchy latency.
//
// A sweep times dependent loads through pointer chains laid out in a word
// pool, for every power-of-two working-set size and stride. The average time
// per load, as a function of both, shows where the cache levels, the TLB
// reach and main memory begin on the host.
//
// # Quick Start
//
//	p, err := memlat.New()
//	if err != nil { ... }
//	if err := p.Run(ctx, os.Stdout); err != nil { ... }
//
// # Output
//
// The grid is comma-terminated text. The header row starts with an empty
// field followed by the byte footprint of each stride. Every other row starts
// with the working-set size in bytes followed by one latency in nanoseconds
// per stride:
//
//	,   8B,  16B,  32B, ...
//	   8K, 1.2, 1.2, 1.3, ...
//	  16K, 1.2, 1.2, 1.3, 1.3, ...
//
// Labels use B below 1,000 bytes, K (KiB) below 1,000,000 and M (MiB) above,
// truncated. Latencies are printed with one decimal and never below
// LatencyFloor: when the calibrated loop overhead exceeds the measured time
// the cell reads 0.1 and a warning carrying the raw value is logged.
//
// # Measurement
//
// For each cell the pool is rewritten into a chain (internal/chase), the
// chain is chased for the cell budget, and a loop of identical shape without
// the loads is timed for the same number of iterations. The difference,
// divided by the number of loads, is the reported latency.
//
// # Run Time
//
// The defaults (1,024 to 16,777,216 words, 20 seconds per cell) give 255
// cells, about 85 minutes. This is expected; options can shrink the sweep.
//
// # Concurrency
//
// A sweep is single-threaded and spins the CPU on purpose. Only one Run per
// Profiler proceeds at a time; another call blocks until the first returns.
package memlat
