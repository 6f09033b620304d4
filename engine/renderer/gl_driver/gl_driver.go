package gl_driver

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/go-gl/gl/v3.3-compatibility/gl"
)

// ErrOutOfMemory is wrapped by every call that left GL_OUT_OF_MEMORY in the error queue.
var ErrOutOfMemory = errors.New("gl: out of memory")

// maxDrainedErrors bounds the GetError loop; a lost context can report errors forever.
const maxDrainedErrors = 16

// glDriver is the implementation of vertex.Driver for a current OpenGL context.
type glDriver struct {
	logger *slog.Logger

	// forceCore overrides the profile mask query when set.
	forceCore *bool
	core      bool

	// enabledClientStates are the client array states switched on since the last DisableClientArrays.
	enabledClientStates []uint32
}

var _ vertex.Driver = &glDriver{}

// NewGLDriver loads the OpenGL function pointers for the context that is current on the calling thread and
// determines its capability profile. Contexts reporting GL_CONTEXT_CORE_PROFILE_BIT are core; compatibility
// and pre 3.2 contexts are legacy.
// The returned driver must only be used from the thread owning the context.
//
// Parameters:
//   - options: variadic list of GLDriverBuilderOption functions to configure the driver
//
// Returns:
//   - vertex.Driver: the OpenGL driver
//   - error: an error if the GL function pointers could not be loaded
func NewGLDriver(options ...GLDriverBuilderOption) (vertex.Driver, error) {
	d := &glDriver{
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(d)
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	if d.forceCore != nil {
		d.core = *d.forceCore
	} else {
		var mask int32
		gl.GetIntegerv(gl.CONTEXT_PROFILE_MASK, &mask)
		// Pre 3.2 contexts reject the enum with GL_INVALID_ENUM; that means legacy.
		d.drainErrors()
		d.core = mask&gl.CONTEXT_CORE_PROFILE_BIT != 0
	}

	d.logger.Info("OpenGL driver initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"core", d.core,
	)
	return d, nil
}

func (d *glDriver) CoreProfile() bool {
	return d.core
}

func (d *glDriver) GenBuffer() (uint32, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	if err := d.checkError("glGenBuffers"); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *glDriver) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (d *glDriver) BindBuffer(id uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
}

func (d *glDriver) BufferData(data []float32, usage vertex.Usage) error {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, glUsage(usage))
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(&data[0]), glUsage(usage))
	}
	return d.checkError("glBufferData")
}

func (d *glDriver) GenVertexArray() (uint32, error) {
	var id uint32
	gl.GenVertexArrays(1, &id)
	if err := d.checkError("glGenVertexArrays"); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *glDriver) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (d *glDriver) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (d *glDriver) VertexAttribPointer(attr vertex.Attribute) {
	loc := attr.Category.Location()
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointer(loc, int32(attr.Size), gl.FLOAT, false, int32(attr.Stride), gl.PtrOffset(attr.Offset))
}

func (d *glDriver) DisableVertexAttribArray(category vertex.Category) {
	gl.DisableVertexAttribArray(category.Location())
}

func (d *glDriver) ClientArrayPointer(attr vertex.Attribute) {
	state := clientState(attr.Category)
	gl.EnableClientState(state)
	d.enabledClientStates = append(d.enabledClientStates, state)

	size, stride, offset := int32(attr.Size), int32(attr.Stride), gl.PtrOffset(attr.Offset)
	switch attr.Category {
	case vertex.CategoryTexture:
		gl.TexCoordPointer(size, gl.FLOAT, stride, offset)
	case vertex.CategoryColor:
		gl.ColorPointer(size, gl.FLOAT, stride, offset)
	case vertex.CategoryNormal:
		gl.NormalPointer(gl.FLOAT, stride, offset)
	case vertex.CategoryCoordinate:
		gl.VertexPointer(size, gl.FLOAT, stride, offset)
	}
}

func (d *glDriver) DisableClientArrays() {
	for _, state := range d.enabledClientStates {
		gl.DisableClientState(state)
	}
	d.enabledClientStates = d.enabledClientStates[:0]
}

func (d *glDriver) DrawArrays(topology vertex.Topology, first, count int) error {
	gl.DrawArrays(glMode(topology), int32(first), int32(count))
	return d.checkError("glDrawArrays")
}

// checkError drains the GL error queue and reports the first error raised by op.
func (d *glDriver) checkError(op string) error {
	var first uint32
	for i := 0; i < maxDrainedErrors; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if first == 0 {
			first = code
		}
	}
	switch first {
	case gl.NO_ERROR:
		return nil
	case gl.OUT_OF_MEMORY:
		return fmt.Errorf("%s: %w", op, ErrOutOfMemory)
	default:
		return fmt.Errorf("%s: GL error 0x%04X", op, first)
	}
}

func (d *glDriver) drainErrors() {
	for i := 0; i < maxDrainedErrors; i++ {
		if gl.GetError() == gl.NO_ERROR {
			return
		}
	}
}

func glUsage(u vertex.Usage) uint32 {
	switch u {
	case vertex.UsageDynamic:
		return gl.DYNAMIC_DRAW
	case vertex.UsageStream:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func glMode(t vertex.Topology) uint32 {
	switch t {
	case vertex.TopologyTriangleStrip:
		return gl.TRIANGLE_STRIP
	case vertex.TopologyLines:
		return gl.LINES
	case vertex.TopologyLineStrip:
		return gl.LINE_STRIP
	case vertex.TopologyPoints:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func clientState(c vertex.Category) uint32 {
	switch c {
	case vertex.CategoryTexture:
		return gl.TEXTURE_COORD_ARRAY
	case vertex.CategoryColor:
		return gl.COLOR_ARRAY
	case vertex.CategoryNormal:
		return gl.NORMAL_ARRAY
	default:
		return gl.VERTEX_ARRAY
	}
}
