package main

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
)

// lightDirection is the fixed directional light used when the format carries normals.
const lightDirection = "0.4, 1.0, 0.6"

func wgslType(n int) string {
	if n == 1 {
		return "f32"
	}
	return fmt.Sprintf("vec%d<f32>", n)
}

func glslType(n int) string {
	if n == 1 {
		return "float"
	}
	return fmt.Sprintf("vec%d", n)
}

// expandPosition returns an expression widening an n element position named in to a vec4.
func expandPosition(vec4, in string, n int) string {
	switch n {
	case 2:
		return fmt.Sprintf("%s(%s, 0.0, 1.0)", vec4, in)
	case 3:
		return fmt.Sprintf("%s(%s, 1.0)", vec4, in)
	}
	return in
}

// expandColor returns an expression widening an n element color named in to an opaque vec4.
func expandColor(vec4, in string, n int) string {
	switch n {
	case 0:
		return vec4 + "(1.0)"
	case 1:
		return fmt.Sprintf("%s(%s, %s, %s, 1.0)", vec4, in, in, in)
	case 2:
		return fmt.Sprintf("%s(%s, 0.0, 1.0)", vec4, in)
	case 3:
		return fmt.Sprintf("%s(%s, 1.0)", vec4, in)
	}
	return in
}

// wgslSource generates a WGSL program consuming the position, color and normal attributes of format
// at their generic locations. Texture coordinates are left unbound.
func wgslSource(format vertex.VertexFormat) string {
	var b strings.Builder
	b.WriteString("struct Uniforms {\n    mvp: mat4x4<f32>,\n};\n")
	b.WriteString("@group(0) @binding(0) var<uniform> uniforms: Uniforms;\n\n")

	b.WriteString("struct VertexIn {\n")
	fmt.Fprintf(&b, "    @location(%d) position: %s,\n", vertex.CategoryCoordinate.Location(), wgslType(format.CoordinateCount()))
	if n := format.ColorCount(); n > 0 {
		fmt.Fprintf(&b, "    @location(%d) color: %s,\n", vertex.CategoryColor.Location(), wgslType(n))
	}
	if format.NormalCount() > 0 {
		fmt.Fprintf(&b, "    @location(%d) normal: vec3<f32>,\n", vertex.CategoryNormal.Location())
	}
	b.WriteString("};\n\n")

	b.WriteString("struct VertexOut {\n    @builtin(position) clip: vec4<f32>,\n    @location(0) color: vec4<f32>,\n};\n\n")

	b.WriteString("@vertex\nfn vs_main(in: VertexIn) -> VertexOut {\n    var out: VertexOut;\n")
	fmt.Fprintf(&b, "    out.clip = uniforms.mvp * %s;\n", expandPosition("vec4<f32>", "in.position", format.CoordinateCount()))
	fmt.Fprintf(&b, "    var color = %s;\n", expandColor("vec4<f32>", "in.color", format.ColorCount()))
	if format.NormalCount() > 0 {
		fmt.Fprintf(&b, "    let shade = 0.35 + 0.65 * max(dot(normalize(in.normal), normalize(vec3<f32>(%s))), 0.0);\n", lightDirection)
		b.WriteString("    color = vec4<f32>(color.rgb * shade, color.a);\n")
	}
	b.WriteString("    out.color = color;\n    return out;\n}\n\n")

	b.WriteString("@fragment\nfn fs_main(frag: VertexOut) -> @location(0) vec4<f32> {\n    return frag.color;\n}\n")
	return b.String()
}

// glslSources generates a GLSL 330 core vertex and fragment shader pair equivalent to wgslSource.
func glslSources(format vertex.VertexFormat) (vertexShader, fragmentShader string) {
	var b strings.Builder
	b.WriteString("#version 330 core\n\n")
	fmt.Fprintf(&b, "layout(location = %d) in %s position;\n", vertex.CategoryCoordinate.Location(), glslType(format.CoordinateCount()))
	if n := format.ColorCount(); n > 0 {
		fmt.Fprintf(&b, "layout(location = %d) in %s color;\n", vertex.CategoryColor.Location(), glslType(n))
	}
	if format.NormalCount() > 0 {
		fmt.Fprintf(&b, "layout(location = %d) in vec3 normal;\n", vertex.CategoryNormal.Location())
	}
	b.WriteString("\nuniform mat4 mvp;\nout vec4 vColor;\n\nvoid main() {\n")
	fmt.Fprintf(&b, "    gl_Position = mvp * %s;\n", expandPosition("vec4", "position", format.CoordinateCount()))
	fmt.Fprintf(&b, "    vec4 c = %s;\n", expandColor("vec4", "color", format.ColorCount()))
	if format.NormalCount() > 0 {
		fmt.Fprintf(&b, "    float shade = 0.35 + 0.65 * max(dot(normalize(normal), normalize(vec3(%s))), 0.0);\n", lightDirection)
		b.WriteString("    c = vec4(c.rgb * shade, c.a);\n")
	}
	b.WriteString("    vColor = c;\n}\n")
	vertexShader = b.String()

	fragmentShader = "#version 330 core\n\nin vec4 vColor;\nout vec4 fragColor;\n\nvoid main() {\n    fragColor = vColor;\n}\n"
	return vertexShader, fragmentShader
}
