package renderer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-vertex/common"
	"github.com/Carmen-Shannon/oxy-vertex/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/cogentcore/webgpu/wgpu"
)

// vertexBufferBackend is the part of the WebGPU backend the vertex driver needs.
type vertexBufferBackend interface {
	// CreateVertexBuffer creates a vertex buffer sized to data and writes data into it.
	CreateVertexBuffer(label string, data []byte) (*wgpu.Buffer, error)
	// ReleaseVertexBuffer releases a buffer returned by CreateVertexBuffer.
	ReleaseVertexBuffer(buf *wgpu.Buffer)
	// DrawVertices binds buf to slot 0 of the current frame pass and draws count vertices from first.
	DrawVertices(buf *wgpu.Buffer, topology wgpu.PrimitiveTopology, first, count uint32) error
}

// wgpuVertexLayout is the WebGPU stand-in for a vertex array object: the layout recorded by
// VertexAttribPointer and the buffer it reads from.
type wgpuVertexLayout struct {
	buffer uint32
	layout wgpu.VertexBufferLayout
}

// wgpuVertexDriver implements vertex.Driver on top of WebGPU by emulating GL object names.
// WebGPU buffers are immutable in size, so every BufferData replaces the underlying buffer.
type wgpuVertexDriver struct {
	backend vertexBufferBackend

	nextID  uint32
	buffers map[uint32]*wgpu.Buffer
	layouts map[uint32]*wgpuVertexLayout

	boundBuffer      uint32
	boundVertexArray uint32
}

var _ vertex.Driver = &wgpuVertexDriver{}

func newWGPUVertexDriver(backend vertexBufferBackend) *wgpuVertexDriver {
	return &wgpuVertexDriver{
		backend: backend,
		buffers: make(map[uint32]*wgpu.Buffer),
		layouts: make(map[uint32]*wgpuVertexLayout),
	}
}

// CoreProfile is always true: WebGPU has no fixed-function client arrays.
func (d *wgpuVertexDriver) CoreProfile() bool {
	return true
}

func (d *wgpuVertexDriver) GenBuffer() (uint32, error) {
	d.nextID++
	d.buffers[d.nextID] = nil
	return d.nextID, nil
}

func (d *wgpuVertexDriver) DeleteBuffer(id uint32) {
	if buf := d.buffers[id]; buf != nil {
		d.backend.ReleaseVertexBuffer(buf)
	}
	delete(d.buffers, id)
	if d.boundBuffer == id {
		d.boundBuffer = 0
	}
}

func (d *wgpuVertexDriver) BindBuffer(id uint32) {
	d.boundBuffer = id
}

// BufferData ignores usage; WebGPU only distinguishes buffer usages by binding type.
func (d *wgpuVertexDriver) BufferData(data []float32, _ vertex.Usage) error {
	id := d.boundBuffer
	old, ok := d.buffers[id]
	if !ok || id == 0 {
		return errors.New("no vertex buffer bound")
	}
	if old != nil {
		d.backend.ReleaseVertexBuffer(old)
		d.buffers[id] = nil
	}

	// The layout is re-specified after every upload.
	if l := d.layouts[d.boundVertexArray]; l != nil {
		l.layout.Attributes = l.layout.Attributes[:0]
	}

	if len(data) == 0 {
		return nil
	}
	buf, err := d.backend.CreateVertexBuffer(fmt.Sprintf("Vertex Buffer %d", id), common.SliceToBytes(data))
	if err != nil {
		return err
	}
	d.buffers[id] = buf
	return nil
}

func (d *wgpuVertexDriver) GenVertexArray() (uint32, error) {
	d.nextID++
	d.layouts[d.nextID] = &wgpuVertexLayout{
		layout: wgpu.VertexBufferLayout{StepMode: wgpu.VertexStepModeVertex},
	}
	return d.nextID, nil
}

func (d *wgpuVertexDriver) DeleteVertexArray(id uint32) {
	delete(d.layouts, id)
	if d.boundVertexArray == id {
		d.boundVertexArray = 0
	}
}

func (d *wgpuVertexDriver) BindVertexArray(id uint32) {
	d.boundVertexArray = id
}

func (d *wgpuVertexDriver) VertexAttribPointer(attr vertex.Attribute) {
	l := d.layouts[d.boundVertexArray]
	if l == nil {
		return
	}
	l.buffer = d.boundBuffer
	l.layout.ArrayStride = uint64(attr.Stride)

	wa := pipeline.VertexAttribute(attr)
	for i, existing := range l.layout.Attributes {
		if existing.ShaderLocation == wa.ShaderLocation {
			l.layout.Attributes[i] = wa
			return
		}
	}
	l.layout.Attributes = append(l.layout.Attributes, wa)
}

func (d *wgpuVertexDriver) DisableVertexAttribArray(category vertex.Category) {
	l := d.layouts[d.boundVertexArray]
	if l == nil {
		return
	}
	loc := category.Location()
	l.layout.Attributes = slices.DeleteFunc(l.layout.Attributes, func(a wgpu.VertexAttribute) bool {
		return a.ShaderLocation == loc
	})
}

func (d *wgpuVertexDriver) ClientArrayPointer(vertex.Attribute) {}

func (d *wgpuVertexDriver) DisableClientArrays() {}

func (d *wgpuVertexDriver) DrawArrays(topology vertex.Topology, first, count int) error {
	l := d.layouts[d.boundVertexArray]
	if l == nil {
		return errors.New("no vertex array bound")
	}
	buf := d.buffers[l.buffer]
	if buf == nil {
		return fmt.Errorf("vertex array %d has no uploaded buffer", d.boundVertexArray)
	}
	return d.backend.DrawVertices(buf, pipeline.PrimitiveTopology(topology), uint32(first), uint32(count))
}

// layout returns a copy of the buffer layout recorded for a vertex array name.
func (d *wgpuVertexDriver) layout(vertexArray uint32) (wgpu.VertexBufferLayout, bool) {
	l, ok := d.layouts[vertexArray]
	if !ok {
		return wgpu.VertexBufferLayout{}, false
	}
	out := l.layout
	out.Attributes = slices.Clone(l.layout.Attributes)
	return out, true
}

// releaseAll releases every buffer still alive.
func (d *wgpuVertexDriver) releaseAll() {
	for id, buf := range d.buffers {
		if buf != nil {
			d.backend.ReleaseVertexBuffer(buf)
		}
		delete(d.buffers, id)
	}
	clear(d.layouts)
}
