// Package testutil provides testing utilities for memlat.
//
// This package is intended for use in tests and benchmarks only.
//
// # Scripted Clocks
//
//	c := &testutil.StepClock{Step: 1}          // 0, 1, 2, ... seconds
//	f := &testutil.FailingClock{After: 10}     // fails on the 11th reading
//	s := &testutil.ScriptClock{Deltas: d}      // advances by d[i] after reading i
//
// # Grid Parsing
//
//	grid, err := testutil.ParseGrid(out.String())
//
// # Random Geometries
//
//	rng := testutil.NewRNG(seed)
//	csize, stride := rng.Geometry(8, 1<<16)
package testutil
