package vertex

import (
	"github.com/Carmen-Shannon/oxy-vertex/common"
)

// noCopy marks a struct that must not be copied after first use. go vet's copylocks check reports copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// vertexArray is the implementation of the VertexArray interface.
type vertexArray struct {
	_ noCopy

	// maxVertexes is the fixed capacity in vertices.
	maxVertexes int
	// vertexCount is the number of committed vertices.
	vertexCount int
	// format is the owned copy of the vertex layout.
	format VertexFormat

	// data is the main buffer, maxVertexes * format.VertexAttributeCount() elements, one contiguous slice per vertex.
	data []float32
	// staging holds the most recently set texture, color and normal elements. Coordinate slots are unused.
	// It is not cleared by AddVertex; staged values carry over to later vertices.
	staging []float32
}

// VertexArray is a CPU-side staging container with a fixed vertex capacity.
//
// Non-coordinate attributes are staged with SetTexture, SetColor and SetNormal and are combined with
// explicit coordinates when a vertex is committed with AddVertex. Staged values persist across commits,
// so geometry sharing one color or normal per primitive only stages it once. Precomputed, already
// interleaved vertices can be appended in bulk with AddPrimitive.
//
// Precondition failures (oversized attributes, exhausted capacity, commits under the zero format) are
// programmer errors and panic with a *ContractError. A VertexArray has a single owner and is not safe for concurrent use.
type VertexArray interface {
	// Clear zero-fills the main and staging buffers and resets the vertex count to 0.
	Clear()

	// SetTexture stages texture coordinates for subsequent vertices.
	//
	// Parameters:
	//   - data: at most Format().TextureCount() elements
	SetTexture(data ...float32)

	// SetColor stages color components for subsequent vertices.
	//
	// Parameters:
	//   - data: at most Format().ColorCount() elements
	SetColor(data ...float32)

	// SetNormal stages a normal vector for subsequent vertices.
	//
	// Parameters:
	//   - data: at most Format().NormalCount() elements
	SetNormal(data ...float32)

	// AddVertex commits one vertex built from the staged attributes followed by the given coordinates.
	// The zero VertexFormat has no elements to commit, so AddVertex on it always panics.
	//
	// Parameters:
	//   - coords: exactly Format().CoordinateCount() elements
	AddVertex(coords ...float32)

	// AddPrimitive appends vertexBlockCount fully interleaved vertices, bypassing the staging buffer.
	// The caller supplies data already in the format's attribute order. Under the zero VertexFormat only a
	// block count of 0 is accepted.
	//
	// Parameters:
	//   - vertexBlockCount: the number of vertices contained in rawData
	//   - rawData: exactly vertexBlockCount * Format().VertexAttributeCount() elements
	AddPrimitive(vertexBlockCount int, rawData ...float32)

	// Format returns the vertex layout of this array.
	//
	// Returns:
	//   - VertexFormat: a copy of the array's format
	Format() VertexFormat

	// Data returns the committed region of the main buffer. The slice aliases the array's storage and is
	// only valid until the next mutation.
	//
	// Returns:
	//   - []float32: VertexCount() * Format().VertexAttributeCount() elements
	Data() []float32

	// Bytes returns the committed region as a native byte order view suitable for GPU upload.
	//
	// Returns:
	//   - []byte: the committed data, or nil when no vertex is committed
	Bytes() []byte

	// VertexCount returns the number of committed vertices.
	//
	// Returns:
	//   - int: the committed vertex count
	VertexCount() int

	// MaxVertexes returns the fixed capacity of the array.
	//
	// Returns:
	//   - int: the maximum number of vertices
	MaxVertexes() int

	// Remaining returns how many more vertices can be committed.
	//
	// Returns:
	//   - int: MaxVertexes() - VertexCount()
	Remaining() int

	// Staging returns a copy of the staging scratch buffer.
	//
	// Returns:
	//   - []float32: Format().VertexAttributeCount() elements
	Staging() []float32
}

var _ VertexArray = &vertexArray{}

// NewVertexArray allocates a VertexArray able to hold maxVertexes vertices of the given format.
// A negative capacity panics with a *ContractError.
//
// Parameters:
//   - maxVertexes: the fixed vertex capacity
//   - format: the layout of every vertex
//
// Returns:
//   - VertexArray: an empty array with zeroed buffers
func NewVertexArray(maxVertexes int, format VertexFormat) VertexArray {
	if maxVertexes < 0 {
		violate("NewVertexArray", "negative capacity %d", maxVertexes)
	}
	return &vertexArray{
		maxVertexes: maxVertexes,
		format:      format,
		data:        make([]float32, maxVertexes*format.VertexAttributeCount()),
		staging:     make([]float32, format.VertexAttributeCount()),
	}
}

func (a *vertexArray) Clear() {
	clear(a.data)
	clear(a.staging)
	a.vertexCount = 0
}

func (a *vertexArray) SetTexture(data ...float32) {
	a.stage("VertexArray.SetTexture", CategoryTexture, data)
}

func (a *vertexArray) SetColor(data ...float32) {
	a.stage("VertexArray.SetColor", CategoryColor, data)
}

func (a *vertexArray) SetNormal(data ...float32) {
	a.stage("VertexArray.SetNormal", CategoryNormal, data)
}

// stage copies data into the staging buffer at the category's offset after checking its declared count.
func (a *vertexArray) stage(op string, c Category, data []float32) {
	if limit := a.format.Count(c); len(data) > limit {
		violate(op, "%d %s elements exceed declared count %d", len(data), c, limit)
	}
	copy(a.staging[a.format.Offset(c):], data)
}

func (a *vertexArray) AddVertex(coords ...float32) {
	const op = "VertexArray.AddVertex"
	if a.format.VertexAttributeCount() == 0 {
		violate(op, "format %s has no elements to commit", a.format)
	}
	if len(coords) != a.format.CoordinateCount() {
		violate(op, "got %d coordinates, format declares %d", len(coords), a.format.CoordinateCount())
	}
	if a.vertexCount >= a.maxVertexes {
		violate(op, "capacity of %d vertexes exhausted", a.maxVertexes)
	}

	stride := a.format.VertexAttributeCount()
	staged := a.format.StagedCount()
	start := a.vertexCount * stride
	copy(a.data[start:start+staged], a.staging[:staged])
	copy(a.data[start+staged:start+stride], coords)
	a.vertexCount++
}

func (a *vertexArray) AddPrimitive(vertexBlockCount int, rawData ...float32) {
	const op = "VertexArray.AddPrimitive"
	if vertexBlockCount < 0 {
		violate(op, "negative vertex block count %d", vertexBlockCount)
	}
	stride := a.format.VertexAttributeCount()
	if stride == 0 && vertexBlockCount > 0 {
		violate(op, "format %s has no elements to commit", a.format)
	}
	if want := vertexBlockCount * stride; len(rawData) != want {
		violate(op, "got %d elements for %d vertexes, want %d", len(rawData), vertexBlockCount, want)
	}
	if a.vertexCount+vertexBlockCount > a.maxVertexes {
		violate(op, "%d vertexes exceed remaining capacity %d", vertexBlockCount, a.maxVertexes-a.vertexCount)
	}

	copy(a.data[a.vertexCount*stride:], rawData)
	a.vertexCount += vertexBlockCount
}

func (a *vertexArray) Format() VertexFormat {
	return a.format
}

func (a *vertexArray) Data() []float32 {
	return a.data[:a.vertexCount*a.format.VertexAttributeCount()]
}

func (a *vertexArray) Bytes() []byte {
	return common.SliceToBytes(a.Data())
}

func (a *vertexArray) VertexCount() int {
	return a.vertexCount
}

func (a *vertexArray) MaxVertexes() int {
	return a.maxVertexes
}

func (a *vertexArray) Remaining() int {
	return a.maxVertexes - a.vertexCount
}

func (a *vertexArray) Staging() []float32 {
	out := make([]float32, len(a.staging))
	copy(out, a.staging)
	return out
}
