package memlat

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting sweep metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordCell is called after each measured cell.
	RecordCell(c Cell)

	// RecordRow is called after each completed row.
	// duration is the wall-clock time the row took.
	RecordRow(csize int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCell(Cell)              {}
func (NoopMetricsCollector) RecordRow(int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CellCount     atomic.Int64
	ClampedCount  atomic.Int64
	Steps         atomic.Int64
	RowCount      atomic.Int64
	RowTotalNanos atomic.Int64
}

// RecordCell implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCell(c Cell) {
	b.CellCount.Add(1)
	b.Steps.Add(int64(c.Steps))
	if c.Clamped {
		b.ClampedCount.Add(1)
	}
}

// RecordRow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRow(_ int, duration time.Duration) {
	b.RowCount.Add(1)
	b.RowTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CellCount:      b.CellCount.Load(),
		ClampedCount:   b.ClampedCount.Load(),
		Steps:          b.Steps.Load(),
		RowCount:       b.RowCount.Load(),
		RowAvgDuration: b.getAvgRowDuration(),
	}
}

func (b *BasicMetricsCollector) getAvgRowDuration() time.Duration {
	count := b.RowCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(b.RowTotalNanos.Load() / count)
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CellCount      int64
	ClampedCount   int64
	Steps          int64
	RowCount       int64
	RowAvgDuration time.Duration
}
