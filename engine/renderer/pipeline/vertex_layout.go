package pipeline

import (
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/cogentcore/webgpu/wgpu"
)

// floatFormats maps a float32 element count to its WebGPU vertex format.
var floatFormats = map[int]wgpu.VertexFormat{
	1: wgpu.VertexFormatFloat32,
	2: wgpu.VertexFormatFloat32x2,
	3: wgpu.VertexFormatFloat32x3,
	4: wgpu.VertexFormatFloat32x4,
}

// VertexAttribute converts a vertex attribute description into a WebGPU vertex attribute. The shader
// location is the generic attribute location of the category.
//
// Parameters:
//   - attr: the attribute description
//
// Returns:
//   - wgpu.VertexAttribute: the WebGPU attribute
func VertexAttribute(attr vertex.Attribute) wgpu.VertexAttribute {
	return wgpu.VertexAttribute{
		Format:         floatFormats[attr.Size],
		Offset:         uint64(attr.Offset),
		ShaderLocation: attr.Category.Location(),
	}
}

// VertexBufferLayout builds the per-vertex buffer layout for an interleaved vertex format.
//
// Parameters:
//   - format: the vertex format
//
// Returns:
//   - wgpu.VertexBufferLayout: a layout with one attribute per non-empty category
func VertexBufferLayout(format vertex.VertexFormat) wgpu.VertexBufferLayout {
	attrs := format.Attributes()
	layout := wgpu.VertexBufferLayout{
		ArrayStride: uint64(format.Stride()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  make([]wgpu.VertexAttribute, 0, len(attrs)),
	}
	for _, a := range attrs {
		layout.Attributes = append(layout.Attributes, VertexAttribute(a))
	}
	return layout
}

// PrimitiveTopology maps a vertex topology to the WebGPU primitive topology.
//
// Parameters:
//   - t: the vertex topology
//
// Returns:
//   - wgpu.PrimitiveTopology: the matching primitive topology
func PrimitiveTopology(t vertex.Topology) wgpu.PrimitiveTopology {
	switch t {
	case vertex.TopologyTriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip
	case vertex.TopologyLines:
		return wgpu.PrimitiveTopologyLineList
	case vertex.TopologyLineStrip:
		return wgpu.PrimitiveTopologyLineStrip
	case vertex.TopologyPoints:
		return wgpu.PrimitiveTopologyPointList
	default:
		return wgpu.PrimitiveTopologyTriangleList
	}
}
