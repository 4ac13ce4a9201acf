// Package resource guards the profiler's pool memory and sweep slot.
//
// Pool reservations are fail-fast: Reserve never waits, it either fits under
// the limit or returns ErrMemoryLimitExceeded.
//
//	rc := resource.NewController(1 << 30)
//
//	if err := rc.Reserve(poolBytes); err != nil {
//	    return err
//	}
//	defer rc.Release(poolBytes)
//
// Two sweeps on one host measure each other's cache pressure, so the sweep
// slot admits one at a time and EnterSweep waits for it:
//
//	if err := rc.EnterSweep(ctx); err != nil {
//	    return err
//	}
//	defer rc.LeaveSweep()
//
// Every method is a no-op on a nil Controller.
package resource
