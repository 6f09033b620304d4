package mesh

import "log/slog"

// MesherBuilderOption is a functional option applied to a mesher during construction via NewMesher.
type MesherBuilderOption func(*mesher)

// WithWorkers sets the maximum number of worker goroutines. Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - MesherBuilderOption: a function that applies the worker count to a mesher
func WithWorkers(n int) MesherBuilderOption {
	return func(m *mesher) {
		if n > 0 {
			m.workers = n
		}
	}
}

// WithQueueSize sets the capacity of the task queue. Values below 1 are ignored.
func WithQueueSize(n int) MesherBuilderOption {
	return func(m *mesher) {
		if n > 0 {
			m.queueSize = n
		}
	}
}

// WithLogger sets the structured logger used by the mesher. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) MesherBuilderOption {
	return func(m *mesher) {
		if logger != nil {
			m.logger = logger
		}
	}
}
