package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-vertex/common"
	"github.com/Carmen-Shannon/oxy-vertex/engine/camera"
	"github.com/Carmen-Shannon/oxy-vertex/engine/renderer"
	"github.com/Carmen-Shannon/oxy-vertex/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/Carmen-Shannon/oxy-vertex/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	trianglesPipelineKey = "vertexdemo.triangles"
	linesPipelineKey     = "vertexdemo.lines"

	// mvpUniformSize is the size of one column-major mat4x4<f32>.
	mvpUniformSize = 16 * 4
)

// runWGPU renders the scene through the WebGPU renderer. The renderer's vertex driver always reports the
// core profile, so every buffer carries a vertex array whose layout matches the pipelines built from the
// same format.
func runWGPU(ctx context.Context, cfg Config, logger *slog.Logger) (err error) {
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithClientAPI(window.ClientAPINone),
	)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, win.Close())
	}()

	presentMode := renderer.PresentModeVSync
	if !cfg.Window.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	cc := cfg.Renderer.ClearColor
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithLogger(logger),
		renderer.WithMSAA(cfg.MSAA()),
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.Software),
		renderer.WithClearColor(cc[0], cc[1], cc[2], cc[3]),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	format := cfg.VertexFormat()
	source := wgslSource(format)
	err = r.RegisterPipelines(
		pipeline.NewPipeline(trianglesPipelineKey, source,
			pipeline.WithVertexFormat(format),
			pipeline.WithUniformSize(mvpUniformSize),
			pipeline.WithCullMode(wgpu.CullModeBack),
		),
		pipeline.NewPipeline(linesPipelineKey, source,
			pipeline.WithVertexFormat(format),
			pipeline.WithUniformSize(mvpUniformSize),
			pipeline.WithTopology(vertex.TopologyLines),
		),
	)
	if err != nil {
		return err
	}

	device := vertex.NewDevice(r.VertexDriver(), vertex.WithLogger(logger))
	s, err := buildScene(ctx, cfg.Mesh, format, device, logger)
	if err != nil {
		return err
	}
	defer s.destroy()

	want := pipeline.VertexBufferLayout(format)
	for _, c := range s.chunks {
		if layout, ok := r.VertexLayout(c.VertexArrayHandle()); ok && layout.ArrayStride != want.ArrayStride {
			return fmt.Errorf("buffer %q has stride %d, pipeline expects %d", c.Label(), layout.ArrayStride, want.ArrayStride)
		}
	}

	win.SetResizeCallback(func(width, height int) {
		if err := r.Resize(width, height); err != nil {
			logger.Error("resize failed", "width", width, "height", height, "error", err)
		}
	})

	cam := s.newCamera(camera.ClipSpaceWebGPU)
	state := newDemoState(win.Time(), newProfiler(cfg, device, logger))
	win.SetKeyDownCallback(state.handleKey)

	var frameErr error
	win.SetUpdateCallback(func() {
		if ctx.Err() != nil {
			win.RequestClose()
			return
		}
		mvp := orbitMVP(cam, win.Width(), win.Height(), state.advance(win.Time()))
		if err := drawWGPUFrame(r, s, &mvp, state.showGrid); err != nil {
			frameErr = err
			win.RequestClose()
			return
		}
		state.endFrame()
	})
	win.ProcessMessages()

	if frameErr != nil {
		return fmt.Errorf("frame failed: %w", frameErr)
	}
	return nil
}

func drawWGPUFrame(r renderer.Renderer, s *scene, mvp *mgl32.Mat4, showGrid bool) error {
	uniform := common.StructToBytes(mvp)
	if err := r.WriteUniform(trianglesPipelineKey, uniform); err != nil {
		return err
	}
	if err := r.WriteUniform(linesPipelineKey, uniform); err != nil {
		return err
	}

	if err := r.BeginFrame(); err != nil {
		return err
	}
	var errs []error
	if showGrid {
		if err := r.UsePipeline(linesPipelineKey); err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, s.renderLines())
		}
	}
	if err := r.UsePipeline(trianglesPipelineKey); err != nil {
		errs = append(errs, err)
	} else {
		errs = append(errs, s.renderTriangles())
	}
	errs = append(errs, r.EndFrame())
	if err := errors.Join(errs...); err != nil {
		return err
	}
	r.Present()
	return nil
}
