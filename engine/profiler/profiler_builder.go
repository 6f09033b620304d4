package profiler

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
)

// ProfilerBuilderOption is a functional option applied to a Profiler during construction via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often statistics are logged. Non-positive intervals are ignored.
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithLogger sets the logger reports are written to. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithDevice attaches a vertex device whose draw and upload counters are reported and reset every interval.
func WithDevice(device *vertex.Device) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.device = device
	}
}

func withClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}
