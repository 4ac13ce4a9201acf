package chase

import (
	"time"

	"github.com/hupe1980/memlat/internal/clock"
)

// Sample is the outcome of one timed chase.
type Sample struct {
	// Steps counts completed outer iterations.
	Steps float64
	// Seconds is the wall-clock time those iterations took.
	Seconds float64
}

// Sampler times chains against a clock.
type Sampler struct {
	clock  clock.Clock
	budget float64
}

// NewSampler returns a Sampler that stops each Run once budget has elapsed.
func NewSampler(c clock.Clock, budget time.Duration) *Sampler {
	return &Sampler{
		clock:  c,
		budget: budget.Seconds(),
	}
}

// Budget returns the per-run time budget.
func (s *Sampler) Budget() time.Duration {
	return time.Duration(s.budget * float64(time.Second))
}

// Run chases the chain Build left in pool for (csize, stride) until the
// budget is used up. The budget is checked only between outer iterations,
// so the returned time may exceed it.
func (s *Sampler) Run(pool []uint, csize, stride int) (Sample, error) {
	if err := Validate(len(pool), csize, stride); err != nil {
		return Sample{}, err
	}

	if _, err := clock.AwaitTick(s.clock); err != nil {
		return Sample{}, err
	}

	start, err := clock.Read(s.clock)
	if err != nil {
		return Sample{}, err
	}

	var steps float64
	for {
		for range stride {
			next := uint(0)
			for {
				next = pool[next]
				if next == 0 {
					break
				}
			}
		}
		steps++

		now, err := clock.Read(s.clock)
		if err != nil {
			return Sample{}, err
		}
		if now-start >= s.budget {
			break
		}
	}

	end, err := clock.Read(s.clock)
	if err != nil {
		return Sample{}, err
	}

	return Sample{Steps: steps, Seconds: end - start}, nil
}

// Calibrate runs steps outer iterations of the Run loop for (csize, stride)
// with every load replaced by an index increment and returns the seconds
// taken. At least one outer iteration is run.
func (s *Sampler) Calibrate(csize, stride int, steps float64) (float64, error) {
	if err := Validate(csize, csize, stride); err != nil {
		return 0, err
	}

	start, err := clock.Read(s.clock)
	if err != nil {
		return 0, err
	}

	var tsteps float64
	for {
		for range stride {
			index := 0
			for index < csize {
				index += stride
			}
		}
		tsteps++
		if tsteps >= steps {
			break
		}
	}

	end, err := clock.Read(s.clock)
	if err != nil {
		return 0, err
	}

	return end - start, nil
}
