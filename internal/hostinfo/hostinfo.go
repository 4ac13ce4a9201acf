// Package hostinfo describes the CPU the profiler runs on.
//
// The cache sizes reported here come from cpuid and are only used to annotate
// logs; the measured grid never depends on them.
package hostinfo

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/cpuid/v2"
)

// Caches holds data-cache sizes in bytes. Unknown levels are zero.
type Caches struct {
	L1D  int
	L2   int
	L3   int
	Line int
}

// Info is a snapshot of the host CPU.
type Info struct {
	Brand         string
	PhysicalCores int
	LogicalCores  int
	Caches        Caches
}

// Detect reads the host CPU description.
func Detect() Info {
	return fromCPU(cpuid.CPU)
}

func fromCPU(c cpuid.CPUInfo) Info {
	return Info{
		Brand:         c.BrandName,
		PhysicalCores: c.PhysicalCores,
		LogicalCores:  c.LogicalCores,
		Caches: Caches{
			L1D:  known(c.Cache.L1D),
			L2:   known(c.Cache.L2),
			L3:   known(c.Cache.L3),
			Line: known(c.CacheLine),
		},
	}
}

// cpuid reports -1 for levels it could not determine.
func known(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// Level names the innermost cache level that holds bytes, or "memory".
func (i Info) Level(bytes int) string {
	switch {
	case i.Caches.L1D > 0 && bytes <= i.Caches.L1D:
		return "L1"
	case i.Caches.L2 > 0 && bytes <= i.Caches.L2:
		return "L2"
	case i.Caches.L3 > 0 && bytes <= i.Caches.L3:
		return "L3"
	default:
		return "memory"
	}
}

func size(v int) string {
	if v <= 0 {
		return "unknown"
	}
	return humanize.IBytes(uint64(v))
}

func (i Info) String() string {
	return fmt.Sprintf("%s (%d/%d cores) L1d=%s L2=%s L3=%s line=%dB",
		i.Brand, i.PhysicalCores, i.LogicalCores,
		size(i.Caches.L1D), size(i.Caches.L2), size(i.Caches.L3), i.Caches.Line)
}
