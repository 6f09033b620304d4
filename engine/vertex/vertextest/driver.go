// Package vertextest provides a recording vertex.Driver for tests that run without a graphics context.
package vertextest

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
)

// ErrInjected is returned by driver calls configured to fail.
var ErrInjected = errors.New("vertextest: injected failure")

// Call is one recorded driver invocation.
type Call struct {
	// Name is the Driver method name, e.g. "GenBuffer".
	Name string
	// ID is the object name argument or result, when the call has one.
	ID uint32
	// Attribute is set for VertexAttribPointer and ClientArrayPointer. DisableVertexAttribArray sets only
	// its Category.
	Attribute vertex.Attribute
	// Usage is set for BufferData.
	Usage vertex.Usage
	// Count is the element count for BufferData and the vertex count for DrawArrays.
	Count int
	// Topology is set for DrawArrays.
	Topology vertex.Topology
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%d)", c.Name, c.ID)
}

// Draw is one recorded DrawArrays call together with the data of the buffer it read from.
type Draw struct {
	Buffer   uint32
	Topology vertex.Topology
	Count    int
	Data     []float32
	// Attributes are the attribute descriptions active for the draw.
	Attributes []vertex.Attribute
}

// Driver is an in-memory vertex.Driver that records every call. Uploaded data is copied, as a real
// driver would, so tests can verify snapshot semantics.
type Driver struct {
	core bool

	// FailGenBuffer makes GenBuffer return ErrInjected.
	FailGenBuffer bool
	// FailGenVertexArray makes GenVertexArray return ErrInjected.
	FailGenVertexArray bool
	// FailBufferData makes BufferData return ErrInjected.
	FailBufferData bool
	// FailDraw makes DrawArrays return ErrInjected.
	FailDraw bool

	nextID uint32
	calls  []Call

	boundBuffer      uint32
	boundVertexArray uint32

	buffers      map[uint32][]float32
	usages       map[uint32]vertex.Usage
	vertexArrays map[uint32]*vertexArrayState
	clientArrays []vertex.Attribute

	draws []Draw
}

type vertexArrayState struct {
	buffer     uint32
	attributes []vertex.Attribute
}

var _ vertex.Driver = &Driver{}

// NewDriver creates a recording driver reporting the given capability profile.
//
// Parameters:
//   - core: true to report a core profile context
//
// Returns:
//   - *Driver: the recording driver
func NewDriver(core bool) *Driver {
	return &Driver{
		core:         core,
		buffers:      make(map[uint32][]float32),
		usages:       make(map[uint32]vertex.Usage),
		vertexArrays: make(map[uint32]*vertexArrayState),
	}
}

func (d *Driver) record(c Call) {
	d.calls = append(d.calls, c)
}

func (d *Driver) CoreProfile() bool {
	d.record(Call{Name: "CoreProfile"})
	return d.core
}

func (d *Driver) GenBuffer() (uint32, error) {
	if d.FailGenBuffer {
		d.record(Call{Name: "GenBuffer"})
		return 0, ErrInjected
	}
	d.nextID++
	d.buffers[d.nextID] = nil
	d.record(Call{Name: "GenBuffer", ID: d.nextID})
	return d.nextID, nil
}

func (d *Driver) DeleteBuffer(id uint32) {
	d.record(Call{Name: "DeleteBuffer", ID: id})
	delete(d.buffers, id)
	delete(d.usages, id)
	if d.boundBuffer == id {
		d.boundBuffer = 0
	}
}

func (d *Driver) BindBuffer(id uint32) {
	d.record(Call{Name: "BindBuffer", ID: id})
	d.boundBuffer = id
}

func (d *Driver) BufferData(data []float32, usage vertex.Usage) error {
	d.record(Call{Name: "BufferData", ID: d.boundBuffer, Usage: usage, Count: len(data)})
	if d.FailBufferData {
		return ErrInjected
	}
	if _, ok := d.buffers[d.boundBuffer]; !ok || d.boundBuffer == 0 {
		return fmt.Errorf("vertextest: BufferData without a bound buffer")
	}
	d.buffers[d.boundBuffer] = slices.Clone(data)
	d.usages[d.boundBuffer] = usage
	return nil
}

func (d *Driver) GenVertexArray() (uint32, error) {
	if d.FailGenVertexArray {
		d.record(Call{Name: "GenVertexArray"})
		return 0, ErrInjected
	}
	d.nextID++
	d.vertexArrays[d.nextID] = &vertexArrayState{}
	d.record(Call{Name: "GenVertexArray", ID: d.nextID})
	return d.nextID, nil
}

func (d *Driver) DeleteVertexArray(id uint32) {
	d.record(Call{Name: "DeleteVertexArray", ID: id})
	delete(d.vertexArrays, id)
	if d.boundVertexArray == id {
		d.boundVertexArray = 0
	}
}

func (d *Driver) BindVertexArray(id uint32) {
	d.record(Call{Name: "BindVertexArray", ID: id})
	d.boundVertexArray = id
}

func (d *Driver) VertexAttribPointer(attr vertex.Attribute) {
	d.record(Call{Name: "VertexAttribPointer", ID: d.boundVertexArray, Attribute: attr})
	vao, ok := d.vertexArrays[d.boundVertexArray]
	if !ok {
		return
	}
	vao.buffer = d.boundBuffer
	// Re-specifying a location replaces it, as glVertexAttribPointer does.
	for i, a := range vao.attributes {
		if a.Category == attr.Category {
			vao.attributes[i] = attr
			return
		}
	}
	vao.attributes = append(vao.attributes, attr)
}

func (d *Driver) DisableVertexAttribArray(category vertex.Category) {
	d.record(Call{Name: "DisableVertexAttribArray", ID: d.boundVertexArray, Attribute: vertex.Attribute{Category: category}})
	vao, ok := d.vertexArrays[d.boundVertexArray]
	if !ok {
		return
	}
	vao.attributes = slices.DeleteFunc(vao.attributes, func(a vertex.Attribute) bool {
		return a.Category == category
	})
}

func (d *Driver) ClientArrayPointer(attr vertex.Attribute) {
	d.record(Call{Name: "ClientArrayPointer", ID: d.boundBuffer, Attribute: attr})
	d.clientArrays = append(d.clientArrays, attr)
}

func (d *Driver) DisableClientArrays() {
	d.record(Call{Name: "DisableClientArrays"})
	d.clientArrays = nil
}

func (d *Driver) DrawArrays(topology vertex.Topology, first, count int) error {
	d.record(Call{Name: "DrawArrays", Topology: topology, Count: count})
	if d.FailDraw {
		return ErrInjected
	}

	draw := Draw{Topology: topology, Count: count}
	if vao, ok := d.vertexArrays[d.boundVertexArray]; ok && d.boundVertexArray != 0 {
		draw.Buffer = vao.buffer
		draw.Attributes = slices.Clone(vao.attributes)
	} else {
		draw.Buffer = d.boundBuffer
		draw.Attributes = slices.Clone(d.clientArrays)
	}
	data, ok := d.buffers[draw.Buffer]
	if !ok || draw.Buffer == 0 {
		return fmt.Errorf("vertextest: DrawArrays without a bound buffer")
	}
	draw.Data = slices.Clone(data)
	d.draws = append(d.draws, draw)
	return nil
}

// Calls returns every recorded call in order.
//
// Returns:
//   - []Call: the recorded calls
func (d *Driver) Calls() []Call {
	return slices.Clone(d.calls)
}

// CallNames returns the method names of every recorded call in order.
//
// Returns:
//   - []string: the recorded method names
func (d *Driver) CallNames() []string {
	names := make([]string, len(d.calls))
	for i, c := range d.calls {
		names[i] = c.Name
	}
	return names
}

// CountCalls returns how many times the named method was called.
//
// Parameters:
//   - name: the Driver method name
//
// Returns:
//   - int: the number of recorded calls with that name
func (d *Driver) CountCalls(name string) int {
	n := 0
	for _, c := range d.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// ResetCalls forgets the recorded calls and draws but keeps object state.
func (d *Driver) ResetCalls() {
	d.calls = nil
	d.draws = nil
}

// Draws returns every successful DrawArrays call in order.
//
// Returns:
//   - []Draw: the recorded draws
func (d *Driver) Draws() []Draw {
	return slices.Clone(d.draws)
}

// BufferContents returns a copy of the data last uploaded to a buffer.
//
// Parameters:
//   - id: the buffer name
//
// Returns:
//   - []float32: the uploaded data
//   - bool: false if the buffer does not exist
func (d *Driver) BufferContents(id uint32) ([]float32, bool) {
	data, ok := d.buffers[id]
	return slices.Clone(data), ok
}

// BufferUsage returns the usage hint of the last upload to a buffer.
//
// Parameters:
//   - id: the buffer name
//
// Returns:
//   - vertex.Usage: the usage hint
//   - bool: false if the buffer has never been filled
func (d *Driver) BufferUsage(id uint32) (vertex.Usage, bool) {
	u, ok := d.usages[id]
	return u, ok
}

// LiveBuffers returns the number of buffer objects that have not been deleted.
func (d *Driver) LiveBuffers() int {
	return len(d.buffers)
}

// LiveVertexArrays returns the number of vertex array objects that have not been deleted.
func (d *Driver) LiveVertexArrays() int {
	return len(d.vertexArrays)
}
