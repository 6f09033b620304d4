package mesh

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = mgl32.Vec4{1, 0, 0, 1}

// vertexAt returns the interleaved elements of vertex i.
func vertexAt(va vertex.VertexArray, i int) []float32 {
	n := va.Format().VertexAttributeCount()
	return va.Data()[i*n : (i+1)*n]
}

func TestAppendQuad(t *testing.T) {
	va := vertex.NewVertexArray(QuadVertexCount, vertex.NewVertexFormat(2, 3, 3, 3))
	corners := [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	AppendQuad(va, corners, red)

	require.Equal(t, QuadVertexCount, va.VertexCount())
	// texture(2) color(3) normal(3) coordinate(3)
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0}, vertexAt(va, 0))
	assert.Equal(t, []float32{1, 0, 1, 0, 0, 0, 0, 1, 1, 0, 0}, vertexAt(va, 1))
	assert.Equal(t, []float32{1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 0}, vertexAt(va, 2))
	assert.Equal(t, vertexAt(va, 0), vertexAt(va, 3))
	assert.Equal(t, vertexAt(va, 2), vertexAt(va, 4))
	assert.Equal(t, []float32{0, 1, 1, 0, 0, 0, 0, 1, 0, 1, 0}, vertexAt(va, 5))
}

func TestAppendQuadAdaptsToFormat(t *testing.T) {
	tests := []struct {
		name   string
		format vertex.VertexFormat
		want   []float32
	}{
		{"position only 2D", vertex.NewVertexFormat(0, 0, 0, 2), []float32{0, 0}},
		{"rgba homogeneous", vertex.NewVertexFormat(0, 4, 0, 4), []float32{1, 0, 0, 1, 0, 0, 0, 1}},
		{"single texture element", vertex.NewVertexFormat(1, 0, 0, 3), []float32{0, 0, 0, 0}},
		{"three texture elements", vertex.NewVertexFormat(3, 0, 0, 2), []float32{0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			va := vertex.NewVertexArray(QuadVertexCount, tt.format)
			AppendQuad(va, [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, red)
			assert.Equal(t, tt.want, vertexAt(va, 0))
		})
	}
}

func TestAppendCubeStagesPerFace(t *testing.T) {
	center := mgl32.Vec3{10, 0, 0}
	va := vertex.NewVertexArray(CubeVertexCount, vertex.NewVertexFormat(0, 3, 3, 3))
	var colors [6]mgl32.Vec4
	for i := range colors {
		colors[i] = mgl32.Vec4{float32(i), 0, 0, 1}
	}
	AppendCube(va, center, 2, colors)
	require.Equal(t, CubeVertexCount, va.VertexCount())

	for face, cf := range cubeFaces {
		for k := range QuadVertexCount {
			v := vertexAt(va, face*QuadVertexCount+k)
			assert.Equal(t, float32(face), v[0], "face %d color", face)
			assert.Equal(t, cf.normal[:], v[3:6], "face %d normal", face)

			// Every corner lies on the face plane, one unit from the center along the normal.
			pos := mgl32.Vec3{v[6], v[7], v[8]}.Sub(center)
			assert.InDelta(t, 1.0, pos.Dot(cf.normal), 1e-6)
		}

		a := cf.corners[1].Sub(cf.corners[0])
		b := cf.corners[3].Sub(cf.corners[0])
		assert.True(t, a.Cross(b).Normalize().ApproxEqual(cf.normal), "face %d winding", face)
	}

	// The last staged attributes persist for later vertices.
	staging := va.Staging()
	assert.Equal(t, []float32{5, 0, 0}, staging[0:3])
	assert.Equal(t, []float32{0, 0, -1}, staging[3:6])
}

func TestAppendLineAndGrid(t *testing.T) {
	va := vertex.NewVertexArray(LineVertexCount+GridVertexCount(2), vertex.NewVertexFormat(0, 3, 0, 3))
	AppendLine(va, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 5, 0}, red)
	assert.Equal(t, []float32{1, 0, 0, 0, 5, 0}, vertexAt(va, 1))

	green := mgl32.Vec4{0, 1, 0, 1}
	AppendGrid(va, mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, 2, 1, green)
	assert.Zero(t, va.Remaining())

	// First grid line runs along u at v = 0.
	assert.Equal(t, []float32{0, 1, 0, -1, 0, -1}, vertexAt(va, 2))
	assert.Equal(t, []float32{0, 1, 0, 1, 0, -1}, vertexAt(va, 3))
	// Last grid line runs along v at u = 2.
	assert.Equal(t, []float32{0, 1, 0, 1, 0, -1}, vertexAt(va, 12))
	assert.Equal(t, []float32{0, 1, 0, 1, 0, 1}, vertexAt(va, 13))
}

func TestBuildersRefusePartialPrimitives(t *testing.T) {
	va := vertex.NewVertexArray(5, vertex.NewVertexFormat(0, 0, 0, 3))

	requireContractPanic(t, func() {
		AppendQuad(va, [4]mgl32.Vec3{}, red)
	})
	requireContractPanic(t, func() {
		AppendGrid(va, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, -1, 1, red)
	})
	requireContractPanic(t, func() {
		AppendCube(va, mgl32.Vec3{}, 1, [6]mgl32.Vec4{})
	})
	assert.Zero(t, va.VertexCount())
}

func requireContractPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.ErrorIs(t, err, vertex.ErrContract)
	}()
	fn()
}
