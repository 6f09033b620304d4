// Package mesh builds geometry into vertex.VertexArrays through the staging protocol and meshes many
// arrays in parallel.
package mesh

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// QuadVertexCount is the number of vertices AppendQuad commits (two triangles).
	QuadVertexCount = 6
	// CubeVertexCount is the number of vertices AppendCube commits.
	CubeVertexCount = 6 * QuadVertexCount
	// LineVertexCount is the number of vertices AppendLine commits.
	LineVertexCount = 2
)

// Face indexes the six faces of an axis aligned cube.
type Face int

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// cubeFace holds the unit corners of a face, counter-clockwise seen from outside, and its normal.
type cubeFace struct {
	corners [4]mgl32.Vec3
	normal  mgl32.Vec3
}

var cubeFaces = [6]cubeFace{
	FacePosX: {[4]mgl32.Vec3{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}, mgl32.Vec3{1, 0, 0}},
	FaceNegX: {[4]mgl32.Vec3{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}, mgl32.Vec3{-1, 0, 0}},
	FacePosY: {[4]mgl32.Vec3{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}, mgl32.Vec3{0, 1, 0}},
	FaceNegY: {[4]mgl32.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}, mgl32.Vec3{0, -1, 0}},
	FacePosZ: {[4]mgl32.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}, mgl32.Vec3{0, 0, 1}},
	FaceNegZ: {[4]mgl32.Vec3{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}, mgl32.Vec3{0, 0, -1}},
}

// quadUVs are the texture coordinates of the four quad corners.
var quadUVs = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// quadOrder splits a quad into two counter-clockwise triangles.
var quadOrder = [QuadVertexCount]int{0, 1, 2, 0, 2, 3}

// GridVertexCount returns the number of vertices AppendGrid commits for the given cell count.
func GridVertexCount(cells int) int {
	return 4 * (cells + 1)
}

// AppendQuad commits a quad as two triangles. The color and the normal derived from the winding of the
// corners are staged once; texture coordinates are staged per corner.
//
// Parameters:
//   - va: the array to append to
//   - corners: the quad corners in counter-clockwise order
//   - color: the RGBA color, truncated to the format's color count
func AppendQuad(va vertex.VertexArray, corners [4]mgl32.Vec3, color mgl32.Vec4) {
	reserve(va, "mesh.AppendQuad", QuadVertexCount)
	normal := corners[1].Sub(corners[0]).Cross(corners[3].Sub(corners[0]))
	if normal.Len() > 0 {
		normal = normal.Normalize()
	}
	stageFace(va, normal, color)
	emitQuad(va, corners)
}

// AppendCube commits the six faces of an axis aligned cube. Each face stages its color and normal once.
//
// Parameters:
//   - va: the array to append to
//   - center: the cube center
//   - size: the edge length
//   - colors: one RGBA color per Face
func AppendCube(va vertex.VertexArray, center mgl32.Vec3, size float32, colors [6]mgl32.Vec4) {
	reserve(va, "mesh.AppendCube", CubeVertexCount)
	half := size / 2
	for face, cf := range cubeFaces {
		var corners [4]mgl32.Vec3
		for i, c := range cf.corners {
			corners[i] = center.Add(c.Mul(half))
		}
		stageFace(va, cf.normal, colors[face])
		emitQuad(va, corners)
	}
}

// AppendLine commits a line segment for vertex.TopologyLines.
func AppendLine(va vertex.VertexArray, from, to mgl32.Vec3, color mgl32.Vec4) {
	reserve(va, "mesh.AppendLine", LineVertexCount)
	stageColor(va, color)
	addPoint(va, from)
	addPoint(va, to)
}

// AppendGrid commits the lines of a square grid spanned by the u and v axes from origin.
//
// Parameters:
//   - va: the array to append to
//   - origin: the corner of the grid
//   - u, v: the unit axes of the grid plane
//   - cells: the number of cells along each axis
//   - spacing: the cell edge length
//   - color: the line color
func AppendGrid(va vertex.VertexArray, origin, u, v mgl32.Vec3, cells int, spacing float32, color mgl32.Vec4) {
	if cells < 0 {
		panic(&vertex.ContractError{Op: "mesh.AppendGrid", Reason: fmt.Sprintf("negative cell count %d", cells)})
	}
	reserve(va, "mesh.AppendGrid", GridVertexCount(cells))
	stageColor(va, color)
	extent := float32(cells) * spacing
	for i := 0; i <= cells; i++ {
		step := float32(i) * spacing
		addPoint(va, origin.Add(v.Mul(step)))
		addPoint(va, origin.Add(v.Mul(step)).Add(u.Mul(extent)))
		addPoint(va, origin.Add(u.Mul(step)))
		addPoint(va, origin.Add(u.Mul(step)).Add(v.Mul(extent)))
	}
}

// reserve panics before anything is committed when va cannot hold n more vertices,
// so a builder never leaves a partial primitive behind.
func reserve(va vertex.VertexArray, op string, n int) {
	if va.Remaining() < n {
		panic(&vertex.ContractError{
			Op:     op,
			Reason: fmt.Sprintf("needs %d vertexes, %d remaining of %d", n, va.Remaining(), va.MaxVertexes()),
		})
	}
}

func emitQuad(va vertex.VertexArray, corners [4]mgl32.Vec3) {
	for _, i := range quadOrder {
		stageTexture(va, quadUVs[i][0], quadUVs[i][1])
		addPoint(va, corners[i])
	}
}

func stageFace(va vertex.VertexArray, normal mgl32.Vec3, color mgl32.Vec4) {
	stageColor(va, color)
	if va.Format().NormalCount() > 0 {
		va.SetNormal(normal[:]...)
	}
}

func stageColor(va vertex.VertexArray, color mgl32.Vec4) {
	if n := va.Format().ColorCount(); n > 0 {
		va.SetColor(color[:n]...)
	}
}

func stageTexture(va vertex.VertexArray, u, v float32) {
	if n := va.Format().TextureCount(); n > 0 {
		uvw := [3]float32{u, v, 0}
		va.SetTexture(uvw[:n]...)
	}
}

// addPoint commits p with as many coordinates as the format holds; a fourth coordinate is w = 1.
func addPoint(va vertex.VertexArray, p mgl32.Vec3) {
	switch va.Format().CoordinateCount() {
	case 2:
		va.AddVertex(p[0], p[1])
	case 3:
		va.AddVertex(p[0], p[1], p[2])
	default:
		va.AddVertex(p[0], p[1], p[2], 1)
	}
}
