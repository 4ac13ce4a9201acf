package memlat

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hupe1980/memlat/internal/hostinfo"
)

// Logger wraps slog.Logger with profiler-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithCSize adds a working-set size field to the logger.
func (l *Logger) WithCSize(csize int) *Logger {
	return &Logger{
		Logger: l.Logger.With("csize", csize),
	}
}

// WithStride adds a stride field to the logger.
func (l *Logger) WithStride(stride int) *Logger {
	return &Logger{
		Logger: l.Logger.With("stride", stride),
	}
}

// PoolInfo describes the word pool of a sweep and the memory reservation
// backing it.
type PoolInfo struct {
	Words   int
	Bytes   int
	OffHeap bool
	// Reserved and Limit come from the resource controller; Limit 0 means
	// unlimited.
	Reserved int64
	Limit    int64
}

// LogPool logs the outcome of allocating the word pool.
func (l *Logger) LogPool(ctx context.Context, p PoolInfo, err error) {
	limit := "unlimited"
	if p.Limit > 0 {
		limit = humanize.IBytes(uint64(p.Limit))
	}
	attrs := []any{
		"words", p.Words,
		"bytes", humanize.IBytes(uint64(p.Bytes)),
		"off_heap", p.OffHeap,
		"reserved", humanize.IBytes(uint64(p.Reserved)),
		"memory_limit", limit,
	}

	if err != nil {
		l.ErrorContext(ctx, "pool allocation failed", append(attrs, "error", err)...)
	} else {
		l.InfoContext(ctx, "pool allocated", attrs...)
	}
}

// LogHost logs the host CPU description.
func (l *Logger) LogHost(ctx context.Context, info hostinfo.Info) {
	l.InfoContext(ctx, "host",
		"cpu", info.Brand,
		"physical_cores", info.PhysicalCores,
		"logical_cores", info.LogicalCores,
		"l1d", humanize.IBytes(uint64(info.Caches.L1D)),
		"l2", humanize.IBytes(uint64(info.Caches.L2)),
		"l3", humanize.IBytes(uint64(info.Caches.L3)),
		"cache_line", info.Caches.Line,
	)
}

// LogSweep logs the start of a sweep.
func (l *Logger) LogSweep(ctx context.Context, rows, cells int, budget time.Duration) {
	l.InfoContext(ctx, "sweep started",
		"rows", rows,
		"cells", cells,
		"budget_per_cell", budget,
		"expected_duration", time.Duration(cells)*budget,
	)
}

// LogCell logs one measured cell.
func (l *Logger) LogCell(ctx context.Context, c Cell) {
	l.DebugContext(ctx, "cell measured",
		"csize", c.CSize,
		"stride", c.Stride,
		"steps", c.Steps,
		"sampled_sec", c.Sampled,
		"overhead_sec", c.Overhead,
		"latency_ns", c.Latency,
	)
}

// LogClamp reports a cell whose raw latency fell below the floor.
func (l *Logger) LogClamp(ctx context.Context, c Cell) {
	l.WarnContext(ctx, "latency below floor, reporting floor",
		"csize", c.CSize,
		"stride", c.Stride,
		"raw_ns", c.Raw,
		"sampled_sec", c.Sampled,
		"overhead_sec", c.Overhead,
		"floor_ns", LatencyFloor,
	)
}

// LogRow logs a completed row.
func (l *Logger) LogRow(ctx context.Context, csize, bytes, cells int, level string, took time.Duration) {
	l.InfoContext(ctx, "row completed",
		"csize", csize,
		"working_set", humanize.IBytes(uint64(bytes)),
		"cache_level", level,
		"cells", cells,
		"took", took,
	)
}

// LogProgress logs sweep progress.
func (l *Logger) LogProgress(ctx context.Context, done, total int) {
	l.InfoContext(ctx, "sweep progress",
		"cells_done", done,
		"cells_total", total,
	)
}

// LogSweepEnd logs the end of a sweep.
func (l *Logger) LogSweepEnd(ctx context.Context, rows int, took time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sweep aborted",
			"rows_written", rows,
			"took", took,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "sweep completed",
			"rows_written", rows,
			"took", took,
		)
	}
}
