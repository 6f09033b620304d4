package vertex

// Driver is the boundary between this package and a graphics backend.
//
// It mirrors the buffer object and vertex array object entry points of OpenGL. Every call is blocking,
// returns once the backend has accepted the command, and must be made on the thread that owns the
// graphics context. Object names are non-zero; 0 is the "no object" sentinel.
type Driver interface {
	// CoreProfile reports whether the active context is a core profile context, which requires a vertex
	// array object to describe attribute layout.
	//
	// Returns:
	//   - bool: true for the core profile, false for the legacy profile
	CoreProfile() bool

	// GenBuffer creates a buffer object name.
	//
	// Returns:
	//   - uint32: the new buffer name (non-zero)
	//   - error: an error if the backend could not allocate the object
	GenBuffer() (uint32, error)

	// DeleteBuffer releases a buffer object. Deleting 0 is a no-op.
	//
	// Parameters:
	//   - id: the buffer name to delete
	DeleteBuffer(id uint32)

	// BindBuffer makes id the current vertex data buffer. Binding 0 unbinds.
	//
	// Parameters:
	//   - id: the buffer name to bind
	BindBuffer(id uint32)

	// BufferData replaces the storage of the bound buffer with data.
	//
	// Parameters:
	//   - data: the interleaved vertex elements to upload
	//   - usage: the expected update frequency
	//
	// Returns:
	//   - error: an error if the backend could not allocate or fill the storage
	BufferData(data []float32, usage Usage) error

	// GenVertexArray creates a vertex array object name. Only called in the core profile.
	//
	// Returns:
	//   - uint32: the new vertex array name (non-zero)
	//   - error: an error if the backend could not allocate the object
	GenVertexArray() (uint32, error)

	// DeleteVertexArray releases a vertex array object. Deleting 0 is a no-op.
	//
	// Parameters:
	//   - id: the vertex array name to delete
	DeleteVertexArray(id uint32)

	// BindVertexArray makes id the current vertex array object. Binding 0 unbinds.
	//
	// Parameters:
	//   - id: the vertex array name to bind
	BindVertexArray(id uint32)

	// VertexAttribPointer describes and enables a generic attribute array sourced from the bound buffer.
	// In the core profile the description is captured by the bound vertex array object.
	//
	// Parameters:
	//   - attr: the category, element count, byte offset and stride of the attribute
	VertexAttribPointer(attr Attribute)

	// DisableVertexAttribArray switches off the generic attribute array of category in the bound vertex
	// array object, so a location described by an earlier format no longer sources data.
	//
	// Parameters:
	//   - category: the category whose location is disabled
	DisableVertexAttribArray(category Category)

	// ClientArrayPointer describes and enables a fixed-function client array (texture coordinate,
	// color, normal or vertex array) sourced from the bound buffer. Only called in the legacy profile.
	//
	// Parameters:
	//   - attr: the category, element count, byte offset and stride of the attribute
	ClientArrayPointer(attr Attribute)

	// DisableClientArrays disables every fixed-function client array enabled by ClientArrayPointer.
	DisableClientArrays()

	// DrawArrays issues a non-indexed draw call using the current bindings.
	//
	// Parameters:
	//   - topology: how vertices are assembled into primitives
	//   - first: the index of the first vertex
	//   - count: the number of vertices to draw
	//
	// Returns:
	//   - error: an error if the backend rejected the draw
	DrawArrays(topology Topology, first, count int) error
}
