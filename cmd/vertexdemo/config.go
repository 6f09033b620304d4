package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-vertex/common"
	"github.com/Carmen-Shannon/oxy-vertex/engine/renderer"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/pelletier/go-toml/v2"
)

// Backend names accepted in [renderer].backend.
const (
	BackendGL   = "gl"
	BackendWGPU = "wgpu"
)

// Profile names accepted in [renderer].profile.
const (
	ProfileAuto   = "auto"
	ProfileLegacy = "legacy"
	ProfileCore   = "core"
)

const defaultTitle = "oxy-vertex demo"

// Config is the demo configuration file. Fields missing from the file keep their defaults.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Mesh     MeshConfig     `toml:"mesh"`
	Profiler ProfilerConfig `toml:"profiler"`
	Log      LogConfig      `toml:"log"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

type RendererConfig struct {
	// Backend is "gl" or "wgpu".
	Backend string `toml:"backend"`
	// Profile selects the GL context: "auto" lets the driver report it, "legacy" and "core" force it.
	// WebGPU is always core.
	Profile string `toml:"profile"`
	// MSAA is the WebGPU sample count: 0 or 1 (off), 4, 8 or 16.
	MSAA       int        `toml:"msaa"`
	ClearColor [4]float64 `toml:"clear_color"`
	// Software forces the WebGPU fallback adapter.
	Software bool `toml:"software"`
}

// MeshConfig describes the generated scene and the vertex format it is staged in.
type MeshConfig struct {
	Texture    int `toml:"texture"`
	Color      int `toml:"color"`
	Normal     int `toml:"normal"`
	Coordinate int `toml:"coordinate"`

	Cubes         int     `toml:"cubes"`
	CubesPerChunk int     `toml:"cubes_per_chunk"`
	CubeSize      float32 `toml:"cube_size"`
	GridCells     int     `toml:"grid_cells"`
	Workers       int     `toml:"workers"`
	StaticDraw    bool    `toml:"static_draw"`
}

type ProfilerConfig struct {
	Enabled    bool `toml:"enabled"`
	IntervalMS int  `toml:"interval_ms"`
}

type LogConfig struct {
	// Level is a slog level name: debug, info, warn or error.
	Level string `toml:"level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  defaultTitle,
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Renderer: RendererConfig{
			Backend:    BackendGL,
			Profile:    ProfileAuto,
			MSAA:       4,
			ClearColor: [4]float64{0.1, 0.1, 0.12, 1},
		},
		Mesh: MeshConfig{
			Color:         3,
			Normal:        3,
			Coordinate:    3,
			Cubes:         64,
			CubesPerChunk: 16,
			CubeSize:      1,
			GridCells:     20,
			Workers:       4,
			StaticDraw:    true,
		},
		Profiler: ProfilerConfig{
			Enabled:    true,
			IntervalMS: 1000,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig decodes the TOML file at path over DefaultConfig and validates the result.
// An empty path returns the defaults.
//
// Parameters:
//   - path: the config file path, or ""
//
// Returns:
//   - Config: the loaded configuration
//   - error: an error if the file cannot be read, contains unknown keys or fails validation
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to open config: %w", err)
		}
		defer f.Close()

		dec := toml.NewDecoder(f).DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return cfg, fmt.Errorf("config %s: %s", path, strict.String())
			}
			return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	}
	cfg.Window.Title = common.Coalesce(cfg.Window.Title, defaultTitle)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}

	switch c.Renderer.Backend {
	case BackendGL, BackendWGPU:
	default:
		errs = append(errs, fmt.Errorf("unknown renderer backend %q", c.Renderer.Backend))
	}
	switch c.Renderer.Profile {
	case ProfileAuto, ProfileCore:
	case ProfileLegacy:
		if c.Renderer.Backend == BackendWGPU {
			errs = append(errs, errors.New("the wgpu backend has no legacy profile"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown renderer profile %q", c.Renderer.Profile))
	}
	if _, ok := renderer.ParseMSAASampleCount(c.Renderer.MSAA); !ok {
		errs = append(errs, fmt.Errorf("unsupported msaa sample count %d", c.Renderer.MSAA))
	}

	m := c.Mesh
	if err := vertex.ValidateVertexFormat(m.Texture, m.Color, m.Normal, m.Coordinate); err != nil {
		errs = append(errs, err)
	}
	if m.Cubes < 0 || m.GridCells < 0 {
		errs = append(errs, errors.New("cube and grid cell counts must not be negative"))
	}
	if m.CubesPerChunk <= 0 {
		errs = append(errs, fmt.Errorf("cubes_per_chunk %d must be positive", m.CubesPerChunk))
	}
	if m.CubeSize <= 0 {
		errs = append(errs, fmt.Errorf("cube_size %g must be positive", m.CubeSize))
	}
	if m.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers %d must be positive", m.Workers))
	}

	if c.Profiler.Enabled && c.Profiler.IntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("profiler interval %dms must be positive", c.Profiler.IntervalMS))
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	return errors.Join(errs...)
}

// VertexFormat returns the configured vertex format. The config must be valid.
func (c Config) VertexFormat() vertex.VertexFormat {
	return vertex.NewVertexFormat(c.Mesh.Texture, c.Mesh.Color, c.Mesh.Normal, c.Mesh.Coordinate)
}

// MSAA returns the configured sample count. The config must be valid.
func (c Config) MSAA() renderer.MSAASampleCount {
	count, _ := renderer.ParseMSAASampleCount(c.Renderer.MSAA)
	return count
}

// LogLevel returns the configured log level, info if it does not parse.
func (c Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ProfilerInterval returns the profiler reporting interval.
func (c Config) ProfilerInterval() time.Duration {
	return time.Duration(c.Profiler.IntervalMS) * time.Millisecond
}
