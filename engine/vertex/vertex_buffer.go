package vertex

import (
	"fmt"
)

// vertexBuffer is the implementation of the VertexBuffer interface.
type vertexBuffer struct {
	_ noCopy

	device *Device
	label  string

	// handles are the driver objects owned by this buffer; the zero value means Empty.
	handles handles
	// vertexCount is the number of vertices resident on the GPU. It is 0 whenever handles is empty.
	vertexCount int
	// format is the layout captured at the most recent upload.
	format VertexFormat

	usage    Usage
	topology Topology
}

// VertexBuffer is a GPU resident copy of a VertexArray.
//
// A VertexBuffer is either Empty (no GPU object held, zero vertices) or Populated. It becomes Populated by
// construction from a VertexArray or by Update, and Empty again by Destroy or by being the source of Move.
// The GPU objects have exactly one owner: they are never duplicated, only moved or released.
// Ownership changes hands only through Move. Assigning a VertexBuffer value shares the same buffer
// rather than copying it, so every alias observes Destroy and Update.
// The uploaded content is a snapshot; mutating the source VertexArray afterwards has no effect until the
// next Update.
type VertexBuffer interface {
	// Update uploads the committed vertices of va, replacing any previous content. The GPU objects are
	// allocated on first use. An array without committed vertices leaves the buffer Empty.
	// On failure the buffer is left Empty and the error wraps ErrAllocation or ErrUpload.
	//
	// Parameters:
	//   - va: the array to upload
	//   - usage: the update frequency hint for the upload
	//
	// Returns:
	//   - error: an error if allocation or upload fails
	Update(va VertexArray, usage Usage) error

	// Render draws all resident vertices with the buffer's topology using whatever shader state the caller
	// bound beforehand. Rendering an Empty buffer is a no-op.
	//
	// Returns:
	//   - error: an error wrapping ErrDraw if the driver rejected the draw
	Render() error

	// Destroy releases the GPU objects and returns the buffer to the Empty state. Destroying an Empty
	// buffer is a no-op, so Destroy may be called any number of times.
	Destroy()

	// Move transfers ownership of the GPU objects and all state to a new VertexBuffer, leaving this one
	// Empty.
	//
	// Returns:
	//   - VertexBuffer: the new owner
	Move() VertexBuffer

	// Empty reports whether the buffer holds no GPU objects.
	//
	// Returns:
	//   - bool: true if Empty, false if Populated
	Empty() bool

	// VertexCount returns the number of vertices resident on the GPU.
	//
	// Returns:
	//   - int: the vertex count captured at the last upload, or 0 if Empty
	VertexCount() int

	// Format returns the vertex layout captured at the last upload.
	//
	// Returns:
	//   - VertexFormat: the upload format, or the zero format if Empty
	Format() VertexFormat

	// Usage returns the usage hint of the last upload.
	//
	// Returns:
	//   - Usage: the last usage hint
	Usage() Usage

	// Topology returns the primitive topology used by Render.
	//
	// Returns:
	//   - Topology: the draw topology
	Topology() Topology

	// Label returns the debug label of the buffer.
	//
	// Returns:
	//   - string: the label
	Label() string

	// BufferHandle returns the driver buffer object name, or 0 if Empty.
	//
	// Returns:
	//   - uint32: the buffer name
	BufferHandle() uint32

	// VertexArrayHandle returns the driver vertex array object name. It is 0 if Empty or in the legacy
	// profile.
	//
	// Returns:
	//   - uint32: the vertex array name
	VertexArrayHandle() uint32
}

var _ VertexBuffer = &vertexBuffer{}

// NewEmptyVertexBuffer creates a VertexBuffer in the Empty state.
//
// Parameters:
//   - device: the device the buffer allocates from
//   - options: variadic list of VertexBufferBuilderOption functions to configure the buffer
//
// Returns:
//   - VertexBuffer: an Empty buffer
func NewEmptyVertexBuffer(device *Device, options ...VertexBufferBuilderOption) VertexBuffer {
	b := &vertexBuffer{
		device:   device,
		usage:    UsageStatic,
		topology: TopologyTriangles,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// NewVertexBuffer creates a VertexBuffer and uploads the committed vertices of va.
// The usage hint defaults to UsageStatic and can be changed with WithUsage or WithStaticDraw.
//
// Parameters:
//   - device: the device the buffer allocates from
//   - va: the array to upload
//   - options: variadic list of VertexBufferBuilderOption functions to configure the buffer
//
// Returns:
//   - VertexBuffer: the buffer, Empty if the upload failed
//   - error: an error if allocation or upload fails
func NewVertexBuffer(device *Device, va VertexArray, options ...VertexBufferBuilderOption) (VertexBuffer, error) {
	b := NewEmptyVertexBuffer(device, options...)
	if err := b.Update(va, b.Usage()); err != nil {
		return b, err
	}
	return b, nil
}

func (b *vertexBuffer) Update(va VertexArray, usage Usage) error {
	b.usage = usage
	count := va.VertexCount()
	if count == 0 {
		b.Destroy()
		return nil
	}

	p := b.device.profile
	log := b.device.logger

	if b.handles.empty() {
		h, err := p.allocate()
		if err != nil {
			log.Error("vertex buffer allocation failed", "label", b.label, "profile", p.kind(), "error", err)
			return b.errorf(err)
		}
		b.handles = h
		b.device.trackAllocate(h)
		log.Debug("vertex buffer allocated", "label", b.label, "profile", p.kind(), "buffer", h.buffer, "vertexArray", h.vertexArray)
	}

	data := va.Data()
	if err := p.upload(b.handles, data, usage); err != nil {
		log.Error("vertex buffer upload failed", "label", b.label, "vertexes", count, "error", err)
		b.Destroy()
		return b.errorf(err)
	}
	p.configureAttributes(b.handles, va.Format())

	b.vertexCount = count
	b.format = va.Format()
	b.device.stats.Uploads++
	b.device.stats.BytesUploaded += len(data) * elementSize

	return nil
}

func (b *vertexBuffer) Render() error {
	if b.Empty() {
		return nil
	}
	if err := b.device.profile.draw(b.handles, b.format, b.topology, b.vertexCount); err != nil {
		b.device.logger.Error("vertex buffer draw failed", "label", b.label, "error", err)
		return b.errorf(err)
	}
	b.device.stats.DrawCalls++
	b.device.stats.VerticesDrawn += b.vertexCount
	return nil
}

func (b *vertexBuffer) Destroy() {
	b.format = VertexFormat{}
	if b.Empty() {
		return
	}
	b.device.profile.release(b.handles)
	b.device.trackRelease(b.handles)
	b.device.logger.Debug("vertex buffer released", "label", b.label, "buffer", b.handles.buffer, "vertexArray", b.handles.vertexArray)
	b.handles = handles{}
	b.vertexCount = 0
}

func (b *vertexBuffer) Move() VertexBuffer {
	moved := &vertexBuffer{
		device:      b.device,
		label:       b.label,
		handles:     b.handles,
		vertexCount: b.vertexCount,
		format:      b.format,
		usage:       b.usage,
		topology:    b.topology,
	}
	b.handles = handles{}
	b.vertexCount = 0
	b.format = VertexFormat{}
	return moved
}

func (b *vertexBuffer) Empty() bool {
	if b.handles.empty() {
		if b.vertexCount != 0 {
			panic(&ContractError{Op: "VertexBuffer.Empty", Reason: fmt.Sprintf("no buffer object but %d vertexes recorded", b.vertexCount)})
		}
		return true
	}
	return false
}

func (b *vertexBuffer) VertexCount() int {
	return b.vertexCount
}

func (b *vertexBuffer) Format() VertexFormat {
	return b.format
}

func (b *vertexBuffer) Usage() Usage {
	return b.usage
}

func (b *vertexBuffer) Topology() Topology {
	return b.topology
}

func (b *vertexBuffer) Label() string {
	return b.label
}

func (b *vertexBuffer) BufferHandle() uint32 {
	return b.handles.buffer
}

func (b *vertexBuffer) VertexArrayHandle() uint32 {
	return b.handles.vertexArray
}

// errorf prefixes err with the buffer label when one is set.
func (b *vertexBuffer) errorf(err error) error {
	if b.label == "" {
		return err
	}
	return fmt.Errorf("vertex buffer %q: %w", b.label, err)
}
