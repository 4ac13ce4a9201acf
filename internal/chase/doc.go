// Package chase builds pointer-chase chains in a word pool and times them.
//
// # Chains
//
// For a working set of csize words and a stride, Build writes
//
//	pool[i] = i + stride   for i = 0, stride, 2*stride, ..., csize-stride
//
// and then overwrites the last slot with the sentinel 0. Following the chain
// from index 0 visits csize/stride distinct words and returns to 0. Every
// load's address is the previous load's value, so the loads cannot overlap.
//
// # Timing
//
// Sampler.Run repeats outer iterations of stride laps each until a wall-clock
// budget is used up. An outer iteration always touches exactly csize words,
// whatever the stride. Sampler.Calibrate replays the same number of outer
// iterations with the load replaced by an index increment, giving the loop
// bookkeeping cost to subtract.
//
// Both loops spin on the CPU; nothing yields.
package chase
