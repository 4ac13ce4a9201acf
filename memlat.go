package memlat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/memlat/internal/chase"
	"github.com/hupe1980/memlat/internal/hostinfo"
	"github.com/hupe1980/memlat/internal/label"
	"github.com/hupe1980/memlat/internal/mem"
	"github.com/hupe1980/memlat/internal/resource"
)

// LatencyFloor is the smallest latency reported, in nanoseconds.
const LatencyFloor = 0.1

// Cell is the measurement of one (working-set size, stride) pair.
type Cell struct {
	CSize  int
	Stride int
	// Steps is the number of outer iterations the sampler completed.
	Steps float64
	// Sampled and Overhead are the chase and calibration times in seconds.
	Sampled  float64
	Overhead float64
	// Raw is the unclamped latency in nanoseconds; Latency is what gets reported.
	Raw     float64
	Latency float64
	Clamped bool
}

// Latency converts a measurement into nanoseconds per access. Every outer
// iteration touches csize words, so the access count is steps*csize.
// Results below LatencyFloor, including negative ones, are reported as
// LatencyFloor.
func Latency(sampled, overhead, steps float64, csize int) float64 {
	ns, _ := clampLatency(rawLatency(sampled, overhead, steps, csize))
	return ns
}

func rawLatency(sampled, overhead, steps float64, csize int) float64 {
	return (sampled - overhead) * 1e9 / (steps * float64(csize))
}

func clampLatency(raw float64) (float64, bool) {
	if !(raw >= LatencyFloor) { // NaN as well
		return LatencyFloor, true
	}
	return raw, false
}

// Profiler sweeps working-set sizes and strides and reports the latency grid.
type Profiler struct {
	opts options
	rc   *resource.Controller
}

// New creates a Profiler. Without options it runs the full default sweep:
// 1,024 to 16,777,216 words, 20 seconds per cell.
func New(optFns ...Option) (*Profiler, error) {
	o := applyOptions(optFns)
	if err := validate(o); err != nil {
		return nil, err
	}

	return &Profiler{
		opts: o,
		rc:   resource.NewController(o.memoryLimit),
	}, nil
}

// Sizes returns the working-set sizes of a sweep in words, smallest first.
func (p *Profiler) Sizes() []int {
	var out []int
	for csize := p.opts.minElements; csize <= p.opts.maxElements; csize *= 2 {
		out = append(out, csize)
	}
	return out
}

// Strides returns the strides measured for csize in words: 1 up to csize/2.
func (p *Profiler) Strides(csize int) []int {
	var out []int
	for stride := 1; stride <= csize/2; stride *= 2 {
		out = append(out, stride)
	}
	return out
}

// Cells returns the number of cells in a sweep.
func (p *Profiler) Cells() int {
	n := 0
	for _, csize := range p.Sizes() {
		n += len(p.Strides(csize))
	}
	return n
}

// WriteHeader writes the header row: an empty field followed by the byte
// footprint of every stride measured at the largest working set.
func (p *Profiler) WriteHeader(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteByte(',')
	for _, stride := range p.Strides(p.opts.maxElements) {
		if err := label.Write(&buf, stride*mem.WordSize); err != nil {
			return err
		}
	}
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	return err
}

// Run performs a full sweep and writes the grid to w.
//
// Each row is written only once all of its cells are measured, so an error
// or a cancelled ctx never leaves a partial row behind. ctx is checked
// between cells; a cell in progress always runs to the end of its budget.
//
// A sweep takes roughly the budget times Cells(). With the defaults that is
// well over an hour.
func (p *Profiler) Run(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.rc.EnterSweep(ctx); err != nil {
		return err
	}
	defer p.rc.LeaveSweep()

	log := p.opts.logger
	want := PoolInfo{
		Words:   p.opts.maxElements,
		Bytes:   p.opts.maxElements * mem.WordSize,
		OffHeap: p.opts.offHeap,
		Limit:   p.rc.Limit(),
	}

	if err := p.rc.Reserve(int64(want.Bytes)); err != nil {
		err = fmt.Errorf("pool of %d bytes: %w", want.Bytes, err)
		want.Reserved = p.rc.Reserved()
		log.LogPool(ctx, want, err)
		return err
	}
	defer p.rc.Release(int64(want.Bytes))

	pool, err := mem.NewPool(want.Words, want.OffHeap)
	if err != nil {
		want.Reserved = p.rc.Reserved()
		log.LogPool(ctx, want, err)
		return err
	}
	defer pool.Close()
	log.LogPool(ctx, PoolInfo{
		Words:    pool.Len(),
		Bytes:    pool.Bytes(),
		OffHeap:  pool.OffHeap(),
		Reserved: p.rc.Reserved(),
		Limit:    p.rc.Limit(),
	}, nil)

	info := hostinfo.Detect()
	log.LogHost(ctx, info)

	sampler := chase.NewSampler(p.opts.clock, p.opts.budget)
	log.LogSweep(ctx, len(p.Sizes()), p.Cells(), sampler.Budget())

	start := time.Now()
	rows, err := p.runSweep(ctx, w, pool.Words(), sampler, info)
	log.LogSweepEnd(ctx, rows, time.Since(start), err)

	return err
}

func (p *Profiler) runSweep(ctx context.Context, w io.Writer, pool []uint, sampler *chase.Sampler, info hostinfo.Info) (int, error) {
	if err := p.WriteHeader(w); err != nil {
		return 0, err
	}

	s := &sweep{
		p:        p,
		sampler:  sampler,
		pool:     pool,
		total:    p.Cells(),
		progress: rate.Sometimes{Interval: p.opts.progressInterval},
	}

	rows := 0
	for _, csize := range p.Sizes() {
		start := time.Now()

		row, err := s.row(ctx, csize)
		if err != nil {
			return rows, err
		}
		if _, err := w.Write(row); err != nil {
			return rows, err
		}
		rows++

		took := time.Since(start)
		p.opts.metricsCollector.RecordRow(csize, took)
		p.opts.logger.LogRow(ctx, csize, csize*mem.WordSize, len(p.Strides(csize)), info.Level(csize*mem.WordSize), took)
	}

	return rows, nil
}

// sweep holds the state shared by the cells of one Run.
type sweep struct {
	p        *Profiler
	sampler  *chase.Sampler
	pool     []uint
	done     int
	total    int
	progress rate.Sometimes
}

func (s *sweep) row(ctx context.Context, csize int) ([]byte, error) {
	var buf bytes.Buffer
	if err := label.Write(&buf, csize*mem.WordSize); err != nil {
		return nil, err
	}

	for _, stride := range s.p.Strides(csize) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, err := s.cell(csize, stride)
		if err != nil {
			return nil, fmt.Errorf("csize %d stride %d: %w", csize, stride, err)
		}
		fmt.Fprintf(&buf, "%4.1f,", c.Latency)

		s.p.opts.metricsCollector.RecordCell(c)
		s.p.opts.logger.LogCell(ctx, c)
		if c.Clamped {
			s.p.opts.logger.LogClamp(ctx, c)
		}

		s.done++
		s.progress.Do(func() {
			s.p.opts.logger.LogProgress(ctx, s.done, s.total)
		})
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

func (s *sweep) cell(csize, stride int) (Cell, error) {
	if err := chase.Build(s.pool, csize, stride); err != nil {
		return Cell{}, err
	}

	sample, err := s.sampler.Run(s.pool, csize, stride)
	if err != nil {
		return Cell{}, err
	}

	overhead, err := s.sampler.Calibrate(csize, stride, sample.Steps)
	if err != nil {
		return Cell{}, err
	}

	raw := rawLatency(sample.Seconds, overhead, sample.Steps, csize)
	ns, clamped := clampLatency(raw)

	return Cell{
		CSize:    csize,
		Stride:   stride,
		Steps:    sample.Steps,
		Sampled:  sample.Seconds,
		Overhead: overhead,
		Raw:      raw,
		Latency:  ns,
		Clamped:  clamped,
	}, nil
}
