package vertex

// VertexBufferBuilderOption is a functional option used to configure a VertexBuffer during construction.
type VertexBufferBuilderOption func(*vertexBuffer)

// WithUsage sets the usage hint used by the initial upload of NewVertexBuffer.
//
// Parameters:
//   - usage: the update frequency hint
//
// Returns:
//   - VertexBufferBuilderOption: a function that sets the usage hint for the buffer
func WithUsage(usage Usage) VertexBufferBuilderOption {
	return func(b *vertexBuffer) {
		b.usage = usage
	}
}

// WithStaticDraw is WithUsage for the boolean staticDraw flag: true selects UsageStatic, false UsageDynamic.
//
// Parameters:
//   - staticDraw: true if the contents will rarely change
//
// Returns:
//   - VertexBufferBuilderOption: a function that sets the usage hint for the buffer
func WithStaticDraw(staticDraw bool) VertexBufferBuilderOption {
	return WithUsage(UsageFromStaticDraw(staticDraw))
}

// WithTopology sets the primitive topology used by Render. The default is TopologyTriangles.
//
// Parameters:
//   - topology: the draw topology
//
// Returns:
//   - VertexBufferBuilderOption: a function that sets the topology for the buffer
func WithTopology(topology Topology) VertexBufferBuilderOption {
	return func(b *vertexBuffer) {
		b.topology = topology
	}
}

// WithLabel sets a debug label used in logs and errors.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - VertexBufferBuilderOption: a function that sets the label for the buffer
func WithLabel(label string) VertexBufferBuilderOption {
	return func(b *vertexBuffer) {
		b.label = label
	}
}
