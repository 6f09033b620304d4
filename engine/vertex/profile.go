package vertex

import "fmt"

// Profile identifies the graphics backend capability profile a Device was created for.
type Profile int

const (
	// ProfileLegacy uses a lone buffer object and fixed-function client arrays.
	ProfileLegacy Profile = iota
	// ProfileCore wraps every buffer object in a vertex array object describing its attributes.
	ProfileCore
)

func (p Profile) String() string {
	switch p {
	case ProfileLegacy:
		return "legacy"
	case ProfileCore:
		return "core"
	}
	return fmt.Sprintf("Profile(%d)", int(p))
}

// handles are the driver object names owned by one VertexBuffer. A zero buffer name means Empty.
type handles struct {
	buffer      uint32
	vertexArray uint32
}

func (h handles) empty() bool {
	return h.buffer == 0
}

// profile is the per-capability strategy used by VertexBuffer. One is chosen when a Device is created
// and reused for every buffer on that device.
type profile interface {
	kind() Profile
	allocate() (handles, error)
	upload(h handles, data []float32, usage Usage) error
	configureAttributes(h handles, format VertexFormat)
	draw(h handles, format VertexFormat, topology Topology, count int) error
	release(h handles)
}

// newProfile selects the strategy for p.
func newProfile(p Profile, driver Driver) profile {
	if p == ProfileCore {
		return &coreProfile{driver: driver}
	}
	return &legacyProfile{driver: driver}
}

// legacyProfile drives contexts without vertex array objects. Attribute layout is not captured by any
// object, so client array pointers are re-specified on every draw.
type legacyProfile struct {
	driver Driver
}

var _ profile = &legacyProfile{}

func (p *legacyProfile) kind() Profile { return ProfileLegacy }

func (p *legacyProfile) allocate() (handles, error) {
	id, err := p.driver.GenBuffer()
	if err != nil {
		return handles{}, fmt.Errorf("%w: buffer object: %w", ErrAllocation, err)
	}
	if id == 0 {
		return handles{}, fmt.Errorf("%w: driver returned no buffer object", ErrAllocation)
	}
	return handles{buffer: id}, nil
}

func (p *legacyProfile) upload(h handles, data []float32, usage Usage) error {
	p.driver.BindBuffer(h.buffer)
	defer p.driver.BindBuffer(0)
	if err := p.driver.BufferData(data, usage); err != nil {
		return fmt.Errorf("%w: %w", ErrUpload, err)
	}
	return nil
}

func (p *legacyProfile) configureAttributes(handles, VertexFormat) {}

func (p *legacyProfile) draw(h handles, format VertexFormat, topology Topology, count int) error {
	p.driver.BindBuffer(h.buffer)
	for _, attr := range format.Attributes() {
		p.driver.ClientArrayPointer(attr)
	}
	err := p.driver.DrawArrays(topology, 0, count)
	p.driver.DisableClientArrays()
	p.driver.BindBuffer(0)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDraw, err)
	}
	return nil
}

func (p *legacyProfile) release(h handles) {
	p.driver.DeleteBuffer(h.buffer)
}

// coreProfile drives core profile contexts where attribute layout lives in a vertex array object.
type coreProfile struct {
	driver Driver
}

var _ profile = &coreProfile{}

func (p *coreProfile) kind() Profile { return ProfileCore }

func (p *coreProfile) allocate() (handles, error) {
	vao, err := p.driver.GenVertexArray()
	if err != nil {
		return handles{}, fmt.Errorf("%w: vertex array object: %w", ErrAllocation, err)
	}
	if vao == 0 {
		return handles{}, fmt.Errorf("%w: driver returned no vertex array object", ErrAllocation)
	}
	id, err := p.driver.GenBuffer()
	if err == nil && id == 0 {
		err = fmt.Errorf("driver returned no buffer object")
	}
	if err != nil {
		p.driver.DeleteVertexArray(vao)
		return handles{}, fmt.Errorf("%w: buffer object: %w", ErrAllocation, err)
	}
	return handles{buffer: id, vertexArray: vao}, nil
}

func (p *coreProfile) upload(h handles, data []float32, usage Usage) error {
	p.driver.BindVertexArray(h.vertexArray)
	p.driver.BindBuffer(h.buffer)
	if err := p.driver.BufferData(data, usage); err != nil {
		p.driver.BindVertexArray(0)
		return fmt.Errorf("%w: %w", ErrUpload, err)
	}
	return nil
}

// configureAttributes must follow upload: the vertex array object and buffer are still bound.
// Categories absent from format are disabled because the vertex array object may still hold
// pointers from a previous upload with another format.
func (p *coreProfile) configureAttributes(h handles, format VertexFormat) {
	for _, c := range categories {
		if format.Count(c) == 0 {
			p.driver.DisableVertexAttribArray(c)
		}
	}
	for _, attr := range format.Attributes() {
		p.driver.VertexAttribPointer(attr)
	}
	p.driver.BindVertexArray(0)
}

func (p *coreProfile) draw(h handles, _ VertexFormat, topology Topology, count int) error {
	p.driver.BindVertexArray(h.vertexArray)
	err := p.driver.DrawArrays(topology, 0, count)
	p.driver.BindVertexArray(0)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDraw, err)
	}
	return nil
}

func (p *coreProfile) release(h handles) {
	p.driver.DeleteVertexArray(h.vertexArray)
	p.driver.DeleteBuffer(h.buffer)
}
