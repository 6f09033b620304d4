// Command vertexdemo stages generated geometry into vertex arrays, uploads it through the configured
// backend and profile, and renders it in a window.
//
// Usage:
//
//	vertexdemo [-config vertexdemo.toml]
//
// Keys: space pauses the camera, G toggles the grid, P toggles profiler output, escape quits.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/Carmen-Shannon/oxy-vertex/engine/profiler"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("vertexdemo failed", "backend", cfg.Renderer.Backend, "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, logger *slog.Logger) error {
	logger.Info("starting", "backend", cfg.Renderer.Backend, "profile", cfg.Renderer.Profile, "format", cfg.VertexFormat().String())
	if cfg.Renderer.Backend == BackendWGPU {
		return runWGPU(ctx, cfg, logger)
	}
	return runGL(ctx, cfg, logger)
}

// newProfiler returns a profiler reporting device statistics, or nil when profiling is disabled.
func newProfiler(cfg Config, device *vertex.Device, logger *slog.Logger) *profiler.Profiler {
	if !cfg.Profiler.Enabled {
		return nil
	}
	return profiler.NewProfiler(
		profiler.WithInterval(cfg.ProfilerInterval()),
		profiler.WithLogger(logger),
		profiler.WithDevice(device),
	)
}
