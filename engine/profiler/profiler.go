package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one logged profiler interval.
type Stats struct {
	// LoopRate is loop iterations per second.
	LoopRate float64
	// FPS is presented frames per second.
	FPS float64
	// Redraws counts frames drawn during the interval.
	Redraws int
	// Suppressed counts iterations that skipped drawing because nothing changed.
	Suppressed int
	HeapMB     float64
	SysMB      float64
	GCCount    uint32
}

// Profiler tracks loop rate, redraws and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	redraws        int
	suppressed     int
	lastTime       time.Time
	updateInterval time.Duration
	now            func() time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(p *Profiler)

// WithInterval sets how often statistics are logged.
//
// Parameters:
//   - d: the logging interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithClock replaces time.Now as the profiler's time source.
//
// Parameters:
//   - now: the clock
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Redraw records that the current iteration presented a frame.
func (p *Profiler) Redraw() {
	p.redraws++
}

// Suppress records that the current iteration skipped drawing.
func (p *Profiler) Suppress() {
	p.suppressed++
}

// Last returns the most recently logged interval.
//
// Returns:
//   - Stats: the last statistics, zero before the first interval elapses
func (p *Profiler) Last() Stats {
	return p.last
}

// Tick should be called once per loop iteration.
// Logs loop rate, frame rate, redraw and suppressed counts, heap usage, allocation rate and
// GC pauses when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	seconds := elapsed.Seconds()
	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap. TotalAlloc: cumulative, tracks churn. Sys: process footprint.
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.last = Stats{
		LoopRate:   float64(p.frameCount) / seconds,
		FPS:        float64(p.redraws) / seconds,
		Redraws:    p.redraws,
		Suppressed: p.suppressed,
		HeapMB:     allocMB,
		SysMB:      sysMB,
		GCCount:    gcCount,
	}

	log.Printf("[Profiler] Loop: %.2f Hz | FPS: %.2f | Redraws: %d | Suppressed: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		p.last.LoopRate, p.last.FPS, p.redraws, p.suppressed, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.frameCount = 0
	p.redraws = 0
	p.suppressed = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
