package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/stretchr/testify/assert"
)

func TestWGSLSourceFollowsFormat(t *testing.T) {
	src := wgslSource(vertex.NewVertexFormat(2, 3, 3, 3))
	assert.Contains(t, src, "@location(0) position: vec3<f32>")
	assert.Contains(t, src, "@location(2) color: vec3<f32>")
	assert.Contains(t, src, "@location(3) normal: vec3<f32>")
	assert.Contains(t, src, "uniforms.mvp * vec4<f32>(in.position, 1.0)")
	assert.Contains(t, src, "let shade")
	assert.NotContains(t, src, "@location(1)")

	src = wgslSource(vertex.NewVertexFormat(0, 0, 0, 2))
	assert.Contains(t, src, "@location(0) position: vec2<f32>")
	assert.Contains(t, src, "vec4<f32>(in.position, 0.0, 1.0)")
	assert.Contains(t, src, "var color = vec4<f32>(1.0);")
	assert.NotContains(t, src, "in.color")
	assert.NotContains(t, src, "normal")
}

func TestGLSLSourcesFollowFormat(t *testing.T) {
	vs, fs := glslSources(vertex.NewVertexFormat(0, 1, 0, 4))
	assert.Contains(t, vs, "#version 330 core")
	assert.Contains(t, vs, "layout(location = 0) in vec4 position;")
	assert.Contains(t, vs, "layout(location = 2) in float color;")
	assert.Contains(t, vs, "gl_Position = mvp * position;")
	assert.Contains(t, vs, "vec4(color, color, color, 1.0)")
	assert.NotContains(t, vs, "normal")
	assert.Contains(t, fs, "fragColor = vColor;")
}

func TestExpandColor(t *testing.T) {
	assert.Equal(t, "vec4(c, 0.0, 1.0)", expandColor("vec4", "c", 2))
	assert.Equal(t, "c", expandColor("vec4", "c", 4))
}
