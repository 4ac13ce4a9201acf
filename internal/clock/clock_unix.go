//go:build linux || darwin || freebsd

package clock

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func osSeconds() (float64, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, fmt.Errorf("%w: clock_gettime: %w", ErrClockRead, err)
	}
	return float64(ts.Sec) + float64(ts.Nsec)/1e9, nil
}
