package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
)

// Report is one interval of collected statistics.
type Report struct {
	// FPS is the number of frames per second over the interval.
	FPS float64
	// HeapMB is the live heap size in megabytes.
	HeapMB float64
	// AllocRateMB is the heap allocation rate in megabytes per second.
	AllocRateMB float64
	// GCCount is the total number of completed GC cycles.
	GCCount uint32
	// LastPauseUs and MaxPauseUs are GC pause times in microseconds.
	LastPauseUs uint64
	MaxPauseUs  uint64
	// SysMB is the memory obtained from the OS in megabytes.
	SysMB float64

	// DrawCallsPerFrame and VerticesPerFrame average the vertex device counters over the interval.
	DrawCallsPerFrame float64
	VerticesPerFrame  float64
	// UploadKBps is the vertex upload rate in kilobytes per second.
	UploadKBps float64
	// LiveBuffers is the number of buffer objects held when the report was taken.
	LiveBuffers int
}

// Profiler tracks frame rate, memory statistics and vertex device throughput for performance monitoring.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	logger         *slog.Logger
	device         *vertex.Device
	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Report
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		logger:         slog.Default(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed. When a vertex device is attached, its
// frame counters are folded into the report and reset.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	r := Report{FPS: float64(p.frameCount) / elapsed.Seconds()}

	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap, TotalAlloc grows forever and tracks churn, Sys is the process footprint.
	r.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	r.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	r.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	r.GCCount = p.memStats.NumGC
	if r.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		r.LastPauseUs = p.memStats.PauseNs[(r.GCCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if r.GCCount-startIdx > 256 {
			startIdx = r.GCCount - 256
		}
		for i := startIdx; i < r.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > r.MaxPauseUs {
				r.MaxPauseUs = pause
			}
		}
	}

	attrs := []any{
		slog.Float64("fps", r.FPS),
		slog.Float64("heap_mb", r.HeapMB),
		slog.Float64("alloc_rate_mb", r.AllocRateMB),
		slog.Uint64("gc", uint64(r.GCCount)),
		slog.Uint64("gc_last_us", r.LastPauseUs),
		slog.Uint64("gc_max_us", r.MaxPauseUs),
		slog.Float64("sys_mb", r.SysMB),
	}

	if p.device != nil {
		stats := p.device.Stats()
		r.DrawCallsPerFrame = float64(stats.DrawCalls) / float64(p.frameCount)
		r.VerticesPerFrame = float64(stats.VerticesDrawn) / float64(p.frameCount)
		r.UploadKBps = float64(stats.BytesUploaded) / 1024 / elapsed.Seconds()
		r.LiveBuffers = stats.LiveBuffers
		p.device.ResetFrameStats()
		attrs = append(attrs,
			slog.Float64("draws_per_frame", r.DrawCallsPerFrame),
			slog.Float64("vertices_per_frame", r.VerticesPerFrame),
			slog.Float64("upload_kbps", r.UploadKBps),
			slog.Int("live_buffers", r.LiveBuffers),
		)
	}

	p.logger.Info("profiler", attrs...)

	p.last = r
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = r.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// LastReport returns the most recently logged report.
func (p *Profiler) LastReport() Report {
	return p.last
}
