package clock

import (
	"errors"
	"fmt"
)

// ErrClockRead is returned when the time source cannot produce a reading.
var ErrClockRead = errors.New("clock: read failed")

// Clock reports the current time as seconds since an arbitrary fixed epoch.
// Successive readings within a run never decrease.
type Clock interface {
	Seconds() (float64, error)
}

// Func adapts a plain function to the Clock interface.
type Func func() (float64, error)

// Seconds implements Clock.
func (f Func) Seconds() (float64, error) { return f() }

// Monotonic returns the system monotonic clock.
func Monotonic() Clock { return monotonic{} }

type monotonic struct{}

func (monotonic) Seconds() (float64, error) {
	return osSeconds()
}

// Read takes one reading from c. Any failure is reported as ErrClockRead.
func Read(c Clock) (float64, error) {
	s, err := c.Seconds()
	if err != nil {
		if errors.Is(err, ErrClockRead) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", ErrClockRead, err)
	}
	return s, nil
}

// AwaitTick spins until the reading of c differs from its first reading and
// returns the new value. Starting a measurement on a tick boundary avoids
// counting a partial tick.
func AwaitTick(c Clock) (float64, error) {
	last, err := Read(c)
	if err != nil {
		return 0, err
	}
	for {
		now, err := Read(c)
		if err != nil {
			return 0, err
		}
		if now != last {
			return now, nil
		}
	}
}
