package testutil

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

// ErrClockFailed is returned by FailingClock once its readings run out.
var ErrClockFailed = errors.New("testutil: clock failed")

// StepClock is a deterministic clock. Every reading returns the current
// value and then advances it by Step seconds.
type StepClock struct {
	Now  float64
	Step float64

	mu    sync.Mutex
	reads int
}

// Seconds implements clock.Clock.
func (c *StepClock) Seconds() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.Now
	c.Now += c.Step
	c.reads++
	return v, nil
}

// Reads returns the number of readings taken so far.
func (c *StepClock) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// FailingClock returns 0, 1, 2, ... seconds for its first After readings
// and ErrClockFailed from then on.
type FailingClock struct {
	After int

	mu    sync.Mutex
	reads int
}

// Seconds implements clock.Clock.
func (c *FailingClock) Seconds() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reads >= c.After {
		return 0, ErrClockFailed
	}
	v := float64(c.reads)
	c.reads++
	return v, nil
}

// ScriptClock advances by Deltas[i%len(Deltas)] seconds after its i-th
// reading, starting from zero.
type ScriptClock struct {
	Deltas []float64

	mu    sync.Mutex
	now   float64
	reads int
}

// Seconds implements clock.Clock.
func (c *ScriptClock) Seconds() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.now
	c.now += c.Deltas[c.reads%len(c.Deltas)]
	c.reads++
	return v, nil
}

// Row is one data row of a latency grid.
type Row struct {
	Label  string
	Values []float64
}

// Grid is a parsed latency grid.
type Grid struct {
	Header []string
	Rows   []Row
}

// ParseGrid parses profiler output. Every field must be comma-terminated,
// the header must start with an empty field, and every data value must be
// a decimal number.
func ParseGrid(s string) (*Grid, error) {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, errors.New("testutil: empty grid")
	}

	header, err := fields(lines[0])
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if len(header) == 0 || header[0] != "" {
		return nil, errors.New("testutil: header must start with an empty field")
	}

	g := &Grid{Header: header[1:]}
	for i, line := range lines[1:] {
		fs, err := fields(line)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if len(fs) == 0 {
			return nil, fmt.Errorf("row %d: missing label", i+1)
		}
		row := Row{Label: fs[0]}
		for _, f := range fs[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			row.Values = append(row.Values, v)
		}
		g.Rows = append(g.Rows, row)
	}

	return g, nil
}

func fields(line string) ([]string, error) {
	if !strings.HasSuffix(line, ",") {
		return nil, fmt.Errorf("testutil: line %q is not comma-terminated", line)
	}
	parts := strings.Split(strings.TrimSuffix(line, ","), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Pow2 returns a random power of two in [lo, hi]. Both bounds must be
// powers of two with lo <= hi.
func (r *RNG) Pow2(lo, hi int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	steps := 0
	for v := lo; v < hi; v *= 2 {
		steps++
	}
	return lo << r.rand.Intn(steps+1)
}

// Geometry returns a random working-set size in [lo, hi] and a random
// stride in [1, csize/2], all powers of two. lo must be at least 2.
func (r *RNG) Geometry(lo, hi int) (csize, stride int) {
	csize = r.Pow2(lo, hi)
	stride = r.Pow2(1, csize/2)
	return csize, stride
}
