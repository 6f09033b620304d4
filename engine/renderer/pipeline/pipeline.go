package pipeline

import (
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the underlying WebGPU render pipeline and the configuration used to create it.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// source is the WGSL module holding both the vertex and fragment entry points.
	source             string
	vertexEntryPoint   string
	fragmentEntryPoint string

	// vertexLayouts describe the vertex buffers bound while drawing with this pipeline, one per slot.
	vertexLayouts []wgpu.VertexBufferLayout

	// uniformSize is the byte size of the optional uniform buffer at group 0 binding 0, 0 for none.
	uniformSize uint64

	// The following fields are GPU allocated resources populated by the Renderer during registration.

	renderPipeline *wgpu.RenderPipeline
	uniformBuffer  *wgpu.Buffer
	bindGroup      *wgpu.BindGroup

	// The following properties are used to configure the pipeline during creation and can be toggled/set with the builder options.

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          vertex.Topology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline defines the interface for a GPU render pipeline drawing non-indexed vertex buffers.
// It holds the WGSL source, vertex buffer layouts and all configuration state required for pipeline creation
// including depth, blend, cull, and topology settings.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Source returns the WGSL shader module source.
	//
	// Returns:
	//   - string: the WGSL source code
	Source() string

	// VertexEntryPoint returns the name of the vertex stage entry point.
	//
	// Returns:
	//   - string: the vertex entry point, "vs_main" by default
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the fragment stage entry point.
	//
	// Returns:
	//   - string: the fragment entry point, "fs_main" by default
	FragmentEntryPoint() string

	// VertexLayouts returns the vertex buffer layouts the pipeline consumes.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: one layout per vertex buffer slot
	VertexLayouts() []wgpu.VertexBufferLayout

	// UniformSize returns the size of the uniform buffer bound at group 0 binding 0.
	//
	// Returns:
	//   - uint64: the uniform buffer size in bytes, 0 if the pipeline has no uniforms
	UniformSize() uint64

	// RenderPipeline returns the underlying render pipeline, or nil if not registered with a Renderer.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the created render pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// UniformBuffer returns the uniform buffer created at registration, or nil.
	//
	// Returns:
	//   - *wgpu.Buffer: the uniform buffer
	UniformBuffer() *wgpu.Buffer

	// BindGroup returns the bind group exposing the uniform buffer, or nil.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group for group 0
	BindGroup() *wgpu.BindGroup

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline (e.g., wgpu.CullModeNone, wgpu.CullModeFront, wgpu.CullModeBack)
	CullMode() wgpu.CullMode

	// Topology returns the vertex topology this pipeline draws.
	//
	// Returns:
	//   - vertex.Topology: the draw topology
	Topology() vertex.Topology

	// PrimitiveTopology returns the WebGPU primitive topology matching Topology.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	PrimitiveTopology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline (e.g., wgpu.FrontFaceCCW, wgpu.FrontFaceCW)
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline (e.g., wgpu.ColorWriteMaskAll)
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline
	BlendState() *wgpu.BlendState

	// SetRenderPipeline sets the render pipeline
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// SetUniforms sets the uniform buffer and the bind group exposing it.
	//
	// Parameters:
	//   - buf: the uniform buffer
	//   - bg: the bind group for group 0
	SetUniforms(buf *wgpu.Buffer, bg *wgpu.BindGroup)

	// Release releases the GPU objects created for this pipeline. Safe to call more than once.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new render Pipeline.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - source: the WGSL module containing the vertex and fragment entry points
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey, source string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:        pipelineKey,
		source:             source,
		vertexEntryPoint:   "vs_main",
		fragmentEntryPoint: "fs_main",
		depthTestEnabled:   true,
		depthWriteEnabled:  true,
		blendEnabled:       false,
		cullMode:           wgpu.CullModeNone,
		topology:           vertex.TopologyTriangles,
		frontFace:          wgpu.FrontFaceCCW,
		writeMask:          wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Source() string {
	return p.source
}

func (p *pipeline) VertexEntryPoint() string {
	return p.vertexEntryPoint
}

func (p *pipeline) FragmentEntryPoint() string {
	return p.fragmentEntryPoint
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.vertexLayouts
}

func (p *pipeline) UniformSize() uint64 {
	return p.uniformSize
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) UniformBuffer() *wgpu.Buffer {
	return p.uniformBuffer
}

func (p *pipeline) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() vertex.Topology {
	return p.topology
}

func (p *pipeline) PrimitiveTopology() wgpu.PrimitiveTopology {
	return PrimitiveTopology(p.topology)
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) SetUniforms(buf *wgpu.Buffer, bg *wgpu.BindGroup) {
	p.uniformBuffer = buf
	p.bindGroup = bg
}

func (p *pipeline) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.uniformBuffer != nil {
		p.uniformBuffer.Release()
		p.uniformBuffer = nil
	}
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
