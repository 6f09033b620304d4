package renderer

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-vertex/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/Carmen-Shannon/oxy-vertex/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu     *sync.Mutex
	logger *slog.Logger

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	vertexDriver *wgpuVertexDriver

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	clearColor           wgpu.Color
}

// Renderer defines the interface for the WebGPU rendering system.
//
// The Renderer owns the device and surface, caches render pipelines by key, and exposes a vertex.Driver so
// vertex.VertexBuffers can be uploaded and drawn through WebGPU. Draws happen between BeginFrame and
// EndFrame after a pipeline has been selected with UsePipeline.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU objects for one or more pipelines via the backend, then caches them by
	// PipelineKey. Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface attachments could not be recreated
	Resize(width, height int) error

	// SetPresentMode sets the surface present mode. A call to Resize is required for it to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// UsePipeline selects the cached pipeline for subsequent draws in the current frame.
	//
	// Parameters:
	//   - key: the unique identifier of a registered Pipeline
	//
	// Returns:
	//   - error: an error if the pipeline is unknown or no frame is in progress
	UsePipeline(key string) error

	// WriteUniform writes the uniform buffer of a cached pipeline.
	//
	// Parameters:
	//   - key: the unique identifier of a registered Pipeline
	//   - data: the uniform bytes
	//
	// Returns:
	//   - error: an error if the pipeline is unknown or has no uniform buffer
	WriteUniform(key string, data []byte) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface; call Present() after EndFrame to display the frame.
	//
	// Returns:
	//   - error: an error if the frame could not be submitted
	EndFrame() error

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// VertexDriver returns the vertex.Driver backed by this renderer's device. It always reports the core
	// profile and must only be used from the thread that created the renderer.
	//
	// Returns:
	//   - vertex.Driver: the WebGPU vertex driver
	VertexDriver() vertex.Driver

	// VertexLayout returns the buffer layout recorded for a vertex array name of the vertex driver, for use in
	// pipeline creation.
	//
	// Parameters:
	//   - vertexArray: a VertexBuffer's VertexArrayHandle
	//
	// Returns:
	//   - wgpu.VertexBufferLayout: the recorded layout
	//   - bool: false if the name is unknown
	VertexLayout(vertexArray uint32) (wgpu.VertexBufferLayout, bool)

	// Release releases every pipeline, vertex buffer and device object owned by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type for the given window.
// The window must have been created without a client API.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: an error if the adapter, device or surface could not be set up
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		logger:        slog.Default(),
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		clearColor:    wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, msaa, r.clearColor)
	}
	if err != nil {
		return nil, err
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	if err := r.backend.ConfigureSurface(window.Width(), window.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}
	r.vertexDriver = newWGPUVertexDriver(r.backend)

	r.logger.Info("renderer initialized", "backend", "wgpu", "msaa", uint32(msaa), "width", window.Width(), "height", window.Height())
	return r, nil
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if existing, exists := r.pipelineCache[key]; exists && existing.RenderPipeline() != nil {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			p.Release()
			return fmt.Errorf("failed to register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
		r.logger.Debug("pipeline registered", "key", key, "topology", p.Topology())
	}
	return nil
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) UsePipeline(key string) error {
	p := r.Pipeline(key)
	if p == nil {
		return fmt.Errorf("render pipeline %q not found in cache", key)
	}
	return r.backend.UsePipeline(p)
}

func (r *renderer) WriteUniform(key string, data []byte) error {
	p := r.Pipeline(key)
	if p == nil {
		return fmt.Errorf("render pipeline %q not found in cache", key)
	}
	return r.backend.WriteUniform(p, data)
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) VertexDriver() vertex.Driver {
	return r.vertexDriver
}

func (r *renderer) VertexLayout(vertexArray uint32) (wgpu.VertexBufferLayout, bool) {
	return r.vertexDriver.layout(vertexArray)
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()

	r.vertexDriver.releaseAll()
	r.backend.Release()
	r.logger.Info("renderer released")
}
