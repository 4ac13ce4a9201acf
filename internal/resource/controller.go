package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrMemoryLimitExceeded is returned when a pool reservation does not fit.
var ErrMemoryLimitExceeded = errors.New("resource: memory limit exceeded")

// Controller bounds the pool memory a profiler maps and admits one sweep at
// a time. A nil Controller admits everything.
type Controller struct {
	limit int64

	pools    *semaphore.Weighted // nil when unlimited
	reserved atomic.Int64

	sweep *semaphore.Weighted
}

// NewController returns a Controller that lets at most limit bytes of pool
// memory be reserved at once. A limit of 0 only tracks reservations.
func NewController(limit int64) *Controller {
	c := &Controller{
		limit: max(limit, 0),
		sweep: semaphore.NewWeighted(1),
	}
	if c.limit > 0 {
		c.pools = semaphore.NewWeighted(c.limit)
	}
	return c
}

// Reserve claims bytes of pool memory without blocking.
func (c *Controller) Reserve(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	if c.pools != nil && !c.pools.TryAcquire(bytes) {
		return ErrMemoryLimitExceeded
	}
	c.reserved.Add(bytes)
	return nil
}

// Release returns bytes claimed by Reserve.
func (c *Controller) Release(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.pools != nil {
		c.pools.Release(bytes)
	}
	c.reserved.Add(-bytes)
}

// Reserved returns the bytes currently claimed.
func (c *Controller) Reserved() int64 {
	if c == nil {
		return 0
	}
	return c.reserved.Load()
}

// Limit returns the memory limit in bytes, 0 if unlimited.
func (c *Controller) Limit() int64 {
	if c == nil {
		return 0
	}
	return c.limit
}

// EnterSweep blocks until no other sweep holds the slot or ctx is done.
func (c *Controller) EnterSweep(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.sweep.Acquire(ctx, 1)
}

// LeaveSweep frees the slot taken by EnterSweep.
func (c *Controller) LeaveSweep() {
	if c == nil {
		return
	}
	c.sweep.Release(1)
}
