package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-vertex/engine/renderer"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vertexdemo.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 8, cfg.VertexFormat().VertexAttributeCount())
	assert.Equal(t, renderer.MSAA4x, cfg.MSAA())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
	assert.Equal(t, time.Second, cfg.ProfilerInterval())
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
title = ""
width = 640

[renderer]
backend = "wgpu"
profile = "core"
msaa = 1
clear_color = [0.0, 0.0, 0.0, 1.0]

[mesh]
texture = 2
color = 4
normal = 0
coordinate = 2
cubes = 3

[log]
level = "debug"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, defaultTitle, cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, BackendWGPU, cfg.Renderer.Backend)
	assert.Equal(t, renderer.MSAAOff, cfg.MSAA())
	assert.Equal(t, [4]float64{0, 0, 0, 1}, cfg.Renderer.ClearColor)
	assert.Equal(t, vertex.NewVertexFormat(2, 4, 0, 2), cfg.VertexFormat())
	assert.Equal(t, 3, cfg.Mesh.Cubes)
	assert.Equal(t, 16, cfg.Mesh.CubesPerChunk)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[renderer]
backnd = "gl"
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backnd")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"window size", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"backend", func(c *Config) { c.Renderer.Backend = "vulkan" }, `unknown renderer backend "vulkan"`},
		{"profile", func(c *Config) { c.Renderer.Profile = "es" }, `unknown renderer profile "es"`},
		{"wgpu legacy", func(c *Config) {
			c.Renderer.Backend = BackendWGPU
			c.Renderer.Profile = ProfileLegacy
		}, "no legacy profile"},
		{"msaa", func(c *Config) { c.Renderer.MSAA = 3 }, "msaa sample count 3"},
		{"normal count", func(c *Config) { c.Mesh.Normal = 2 }, "normal"},
		{"coordinate count", func(c *Config) { c.Mesh.Coordinate = 1 }, "coordinate"},
		{"negative cubes", func(c *Config) { c.Mesh.Cubes = -1 }, "must not be negative"},
		{"chunk size", func(c *Config) { c.Mesh.CubesPerChunk = 0 }, "cubes_per_chunk"},
		{"cube size", func(c *Config) { c.Mesh.CubeSize = 0 }, "cube_size"},
		{"workers", func(c *Config) { c.Mesh.Workers = 0 }, "workers"},
		{"profiler interval", func(c *Config) { c.Profiler.IntervalMS = 0 }, "profiler interval"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfigValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Renderer.MSAA = 2
	cfg.Mesh.Color = 7

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "msaa")
	assert.ErrorIs(t, err, vertex.ErrContract)

	cfg.Profiler.Enabled = false
	cfg.Profiler.IntervalMS = 0
	cfg.Renderer.MSAA = 8
	cfg.Mesh.Color = 4
	assert.NoError(t, cfg.Validate())
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := LoadConfig("vertexdemo.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
