package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-vertex/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDraw struct {
	buf      *wgpu.Buffer
	topology wgpu.PrimitiveTopology
	first    uint32
	count    uint32
}

// fakeVertexBackend stands in for the WebGPU device so the driver can be tested without a GPU.
type fakeVertexBackend struct {
	inFrame  bool
	failNext bool

	live     map[*wgpu.Buffer][]byte
	released int
	draws    []fakeDraw
}

func newFakeVertexBackend() *fakeVertexBackend {
	return &fakeVertexBackend{live: make(map[*wgpu.Buffer][]byte)}
}

func (f *fakeVertexBackend) CreateVertexBuffer(_ string, data []byte) (*wgpu.Buffer, error) {
	if f.failNext {
		f.failNext = false
		return nil, errors.New("out of device memory")
	}
	buf := &wgpu.Buffer{}
	f.live[buf] = append([]byte(nil), data...)
	return buf, nil
}

func (f *fakeVertexBackend) ReleaseVertexBuffer(buf *wgpu.Buffer) {
	delete(f.live, buf)
	f.released++
}

func (f *fakeVertexBackend) DrawVertices(buf *wgpu.Buffer, topology wgpu.PrimitiveTopology, first, count uint32) error {
	if !f.inFrame {
		return errors.New("draw outside of frame")
	}
	f.draws = append(f.draws, fakeDraw{buf: buf, topology: topology, first: first, count: count})
	return nil
}

func newColoredTriangle() vertex.VertexArray {
	va := vertex.NewVertexArray(6, vertex.NewVertexFormat(0, 3, 0, 2))
	va.SetColor(1, 0, 0)
	va.AddVertex(0, 0)
	va.AddVertex(1, 0)
	va.AddVertex(0, 1)
	return va
}

func TestWGPUVertexDriverReportsCoreProfile(t *testing.T) {
	d := newWGPUVertexDriver(newFakeVertexBackend())
	assert.True(t, d.CoreProfile())
	assert.Equal(t, vertex.ProfileCore, vertex.NewDevice(d).Profile())
}

func TestWGPUVertexDriverUploadAndLayout(t *testing.T) {
	backend := newFakeVertexBackend()
	d := newWGPUVertexDriver(backend)
	va := newColoredTriangle()

	vb, err := vertex.NewVertexBuffer(vertex.NewDevice(d), va)
	require.NoError(t, err)
	require.Len(t, backend.live, 1)
	for _, data := range backend.live {
		assert.Len(t, data, 3*5*4)
	}

	layout, ok := d.layout(vb.VertexArrayHandle())
	require.True(t, ok)
	assert.Equal(t, pipeline.VertexBufferLayout(va.Format()), layout)

	// A second upload replaces the buffer and re-specifies the same layout.
	va.AddVertex(1, 1)
	require.NoError(t, vb.Update(va, vertex.UsageDynamic))
	assert.Len(t, backend.live, 1)
	assert.Equal(t, 1, backend.released)
	layout, _ = d.layout(vb.VertexArrayHandle())
	assert.Len(t, layout.Attributes, 2)
}

func TestWGPUVertexDriverLayoutFollowsNewFormat(t *testing.T) {
	backend := newFakeVertexBackend()
	d := newWGPUVertexDriver(backend)

	lit := vertex.NewVertexArray(3, vertex.NewVertexFormat(2, 3, 3, 3))
	lit.AddVertex(0, 0, 0)
	vb, err := vertex.NewVertexBuffer(vertex.NewDevice(d), lit)
	require.NoError(t, err)
	layout, _ := d.layout(vb.VertexArrayHandle())
	require.Len(t, layout.Attributes, 4)

	plain := vertex.NewVertexArray(3, vertex.NewVertexFormat(0, 0, 0, 3))
	plain.AddVertex(1, 2, 3)
	require.NoError(t, vb.Update(plain, vertex.UsageStatic))

	layout, ok := d.layout(vb.VertexArrayHandle())
	require.True(t, ok)
	assert.Equal(t, pipeline.VertexBufferLayout(plain.Format()), layout)
}

func TestWGPUVertexDriverRender(t *testing.T) {
	backend := newFakeVertexBackend()
	d := newWGPUVertexDriver(backend)
	vb, err := vertex.NewVertexBuffer(vertex.NewDevice(d), newColoredTriangle(), vertex.WithTopology(vertex.TopologyLineStrip))
	require.NoError(t, err)

	err = vb.Render()
	assert.ErrorIs(t, err, vertex.ErrDraw)

	backend.inFrame = true
	require.NoError(t, vb.Render())
	require.Len(t, backend.draws, 1)
	assert.Equal(t, uint32(3), backend.draws[0].count)
	assert.Equal(t, wgpu.PrimitiveTopologyLineStrip, backend.draws[0].topology)
	_, live := backend.live[backend.draws[0].buf]
	assert.True(t, live)
}

func TestWGPUVertexDriverUploadFailure(t *testing.T) {
	backend := newFakeVertexBackend()
	d := newWGPUVertexDriver(backend)
	backend.failNext = true

	vb, err := vertex.NewVertexBuffer(vertex.NewDevice(d), newColoredTriangle())
	assert.ErrorIs(t, err, vertex.ErrUpload)
	assert.True(t, vb.Empty())
	assert.Empty(t, d.buffers)
	assert.Empty(t, d.layouts)
}

func TestWGPUVertexDriverDestroyAndReleaseAll(t *testing.T) {
	backend := newFakeVertexBackend()
	d := newWGPUVertexDriver(backend)
	device := vertex.NewDevice(d)

	a, err := vertex.NewVertexBuffer(device, newColoredTriangle())
	require.NoError(t, err)
	_, err = vertex.NewVertexBuffer(device, newColoredTriangle())
	require.NoError(t, err)
	require.Len(t, backend.live, 2)

	vao := a.VertexArrayHandle()
	a.Destroy()
	assert.Len(t, backend.live, 1)
	_, ok := d.layout(vao)
	assert.False(t, ok)

	d.releaseAll()
	assert.Empty(t, backend.live)
	assert.Equal(t, 2, backend.released)
}

func TestWGPUVertexDriverRequiresBinding(t *testing.T) {
	d := newWGPUVertexDriver(newFakeVertexBackend())
	assert.Error(t, d.BufferData([]float32{1, 2}, vertex.UsageStatic))
	assert.Error(t, d.DrawArrays(vertex.TopologyTriangles, 0, 3))

	vao, err := d.GenVertexArray()
	require.NoError(t, err)
	d.BindVertexArray(vao)
	assert.Error(t, d.DrawArrays(vertex.TopologyTriangles, 0, 3))
}
