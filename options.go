package memlat

import (
	"log/slog"
	"time"

	"github.com/hupe1980/memlat/internal/clock"
)

const (
	// DefaultMinElements is the smallest working set swept, in words.
	DefaultMinElements = 1024
	// DefaultMaxElements is the pool capacity and largest working set, in words.
	DefaultMaxElements = 4096 * 4096
	// DefaultBudget is the measurement time spent on each cell.
	DefaultBudget = 20 * time.Second
)

type options struct {
	minElements      int
	maxElements      int
	budget           time.Duration
	clock            clock.Clock
	metricsCollector MetricsCollector
	logger           *Logger
	memoryLimit      int64
	offHeap          bool
	progressInterval time.Duration
}

// Option configures a Profiler.
//
// The command-line tool uses none of these; the defaults reproduce the fixed
// sweep. They exist so tests and embedders can run shorter sweeps.
type Option func(*options)

// WithMinElements sets the smallest working set in words.
// It must be a power of two, at least 2.
func WithMinElements(n int) Option {
	return func(o *options) {
		o.minElements = n
	}
}

// WithMaxElements sets the pool capacity and the largest working set in words.
// It must be a power of two, at least the minimum.
func WithMaxElements(n int) Option {
	return func(o *options) {
		o.maxElements = n
	}
}

// WithBudget sets the measurement time per cell.
func WithBudget(d time.Duration) Option {
	return func(o *options) {
		o.budget = d
	}
}

// WithClock replaces the monotonic system clock.
// If nil is passed, the system clock is used.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c == nil {
			c = clock.Monotonic()
		}
		o.clock = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring sweeps.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &memlat.BasicMetricsCollector{}
//	p, _ := memlat.New(memlat.WithMetricsCollector(metrics))
//	_ = p.Run(ctx, os.Stdout)
//	stats := metrics.GetStats()
//	fmt.Printf("Cells: %d, clamped: %d\n", stats.CellCount, stats.ClampedCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := memlat.NewJSONLogger(slog.LevelInfo)
//	p, _ := memlat.New(memlat.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMemoryLimit caps the memory the pool may take. A sweep whose pool does
// not fit fails before measuring anything. 0 means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithOffHeap selects an anonymous mapping (true, the default) or a Go heap
// slice (false) for the pool.
func WithOffHeap(enabled bool) Option {
	return func(o *options) {
		o.offHeap = enabled
	}
}

// WithProgressInterval sets how often sweep progress is logged.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		minElements:      DefaultMinElements,
		maxElements:      DefaultMaxElements,
		budget:           DefaultBudget,
		clock:            clock.Monotonic(),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		offHeap:          true,
		progressInterval: time.Minute,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
