package vertex

import "fmt"

// Usage is a performance hint telling the driver how often a buffer's contents will change.
// It never affects correctness.
type Usage int

const (
	// UsageStatic marks data that is uploaded once and drawn many times.
	UsageStatic Usage = iota
	// UsageDynamic marks data that is re-uploaded frequently and drawn many times.
	UsageDynamic
	// UsageStream marks data that is uploaded once and drawn at most a few times.
	UsageStream
)

// UsageFromStaticDraw maps the boolean staticDraw flag onto a Usage.
//
// Parameters:
//   - staticDraw: true for infrequently updated data
//
// Returns:
//   - Usage: UsageStatic when staticDraw is true, UsageDynamic otherwise
func UsageFromStaticDraw(staticDraw bool) Usage {
	if staticDraw {
		return UsageStatic
	}
	return UsageDynamic
}

func (u Usage) String() string {
	switch u {
	case UsageStatic:
		return "static"
	case UsageDynamic:
		return "dynamic"
	case UsageStream:
		return "stream"
	}
	return fmt.Sprintf("Usage(%d)", int(u))
}

// Topology selects how consecutive vertices are assembled into primitives by a draw call.
type Topology int

const (
	// TopologyTriangles draws every three vertices as a separate triangle.
	TopologyTriangles Topology = iota
	// TopologyTriangleStrip draws a connected strip of triangles.
	TopologyTriangleStrip
	// TopologyLines draws every two vertices as a separate line.
	TopologyLines
	// TopologyLineStrip draws a connected line through all vertices.
	TopologyLineStrip
	// TopologyPoints draws every vertex as a point.
	TopologyPoints
)

func (t Topology) String() string {
	switch t {
	case TopologyTriangles:
		return "triangles"
	case TopologyTriangleStrip:
		return "triangle-strip"
	case TopologyLines:
		return "lines"
	case TopologyLineStrip:
		return "line-strip"
	case TopologyPoints:
		return "points"
	}
	return fmt.Sprintf("Topology(%d)", int(t))
}
