package vertex

import "fmt"

const (
	// MaxTextureCount is the largest number of texture coordinate elements per vertex.
	MaxTextureCount = 3
	// MaxColorCount is the largest number of color elements per vertex.
	MaxColorCount = 4
	// NormalElementCount is the only non-zero number of normal elements per vertex.
	NormalElementCount = 3
	// MinCoordinateCount is the smallest number of position elements per vertex.
	MinCoordinateCount = 2
	// MaxCoordinateCount is the largest number of position elements per vertex.
	MaxCoordinateCount = 4

	// elementSize is the size in bytes of one vertex element (float32).
	elementSize = 4
)

// Category identifies one of the fixed attribute groups of a vertex.
// Categories are always laid out in declaration order: texture, color, normal, coordinate.
type Category int

const (
	// CategoryTexture holds texture coordinates.
	CategoryTexture Category = iota
	// CategoryColor holds color components.
	CategoryColor
	// CategoryNormal holds the normal vector.
	CategoryNormal
	// CategoryCoordinate holds the vertex position. It is always last in a vertex.
	CategoryCoordinate
)

func (c Category) String() string {
	switch c {
	case CategoryTexture:
		return "texture"
	case CategoryColor:
		return "color"
	case CategoryNormal:
		return "normal"
	case CategoryCoordinate:
		return "coordinate"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// categories lists every Category in layout order.
var categories = []Category{CategoryTexture, CategoryColor, CategoryNormal, CategoryCoordinate}

// Location returns the generic attribute location a core profile shader binds this category to.
// Coordinates take location 0 so position-only shaders work unchanged.
//
// Returns:
//   - uint32: the attribute location
func (c Category) Location() uint32 {
	switch c {
	case CategoryCoordinate:
		return 0
	case CategoryTexture:
		return 1
	case CategoryColor:
		return 2
	case CategoryNormal:
		return 3
	}
	return uint32(c)
}

// Attribute describes where one category lives inside an interleaved vertex.
// It is the unit handed to a Driver when configuring attribute pointers.
type Attribute struct {
	Category Category
	// Size is the number of float32 elements in this category.
	Size int
	// Offset is the byte offset of the category from the start of a vertex.
	Offset int
	// Stride is the byte distance between consecutive vertices.
	Stride int
}

// VertexFormat is an immutable description of how many elements each attribute category contributes
// to a vertex. The zero value is the valid, degenerate all-zero format.
type VertexFormat struct {
	textureCount         int
	colorCount           int
	normalCount          int
	coordinateCount      int
	vertexAttributeCount int
}

// NewVertexFormat creates a validated VertexFormat. Out of range counts are a programmer error and
// panic with a *ContractError, so an invalid format can never exist.
//
// Parameters:
//   - texture: texture coordinate elements per vertex (0-3)
//   - color: color elements per vertex (0-4)
//   - normal: normal elements per vertex (0 or 3)
//   - coordinate: position elements per vertex (2-4)
//
// Returns:
//   - VertexFormat: the validated format
func NewVertexFormat(texture, color, normal, coordinate int) VertexFormat {
	if err := ValidateVertexFormat(texture, color, normal, coordinate); err != nil {
		panic(err)
	}
	return VertexFormat{
		textureCount:         texture,
		colorCount:           color,
		normalCount:          normal,
		coordinateCount:      coordinate,
		vertexAttributeCount: texture + color + normal + coordinate,
	}
}

// ValidateVertexFormat checks the counts NewVertexFormat would accept without panicking.
// It is meant for validating untrusted input such as configuration files.
//
// Parameters:
//   - texture: texture coordinate elements per vertex
//   - color: color elements per vertex
//   - normal: normal elements per vertex
//   - coordinate: position elements per vertex
//
// Returns:
//   - error: a *ContractError describing the first violated bound, or nil
func ValidateVertexFormat(texture, color, normal, coordinate int) error {
	const op = "NewVertexFormat"
	switch {
	case texture < 0 || texture > MaxTextureCount:
		return &ContractError{Op: op, Reason: fmt.Sprintf("texture count %d outside [0, %d]", texture, MaxTextureCount)}
	case color < 0 || color > MaxColorCount:
		return &ContractError{Op: op, Reason: fmt.Sprintf("color count %d outside [0, %d]", color, MaxColorCount)}
	case normal != 0 && normal != NormalElementCount:
		return &ContractError{Op: op, Reason: fmt.Sprintf("normal count %d must be 0 or %d", normal, NormalElementCount)}
	case coordinate < MinCoordinateCount || coordinate > MaxCoordinateCount:
		return &ContractError{Op: op, Reason: fmt.Sprintf("coordinate count %d outside [%d, %d]", coordinate, MinCoordinateCount, MaxCoordinateCount)}
	}
	return nil
}

func (f VertexFormat) TextureCount() int { return f.textureCount }

func (f VertexFormat) ColorCount() int { return f.colorCount }

func (f VertexFormat) NormalCount() int { return f.normalCount }

func (f VertexFormat) CoordinateCount() int { return f.coordinateCount }

// VertexAttributeCount returns the total number of float32 elements in one vertex.
func (f VertexFormat) VertexAttributeCount() int { return f.vertexAttributeCount }

// StagedCount returns the number of leading elements that come from the staging scratch buffer
// (texture, color and normal), i.e. everything except coordinates.
func (f VertexFormat) StagedCount() int {
	return f.textureCount + f.colorCount + f.normalCount
}

func (f VertexFormat) TextureOffset() int { return 0 }

func (f VertexFormat) ColorOffset() int { return f.textureCount }

func (f VertexFormat) NormalOffset() int { return f.textureCount + f.colorCount }

func (f VertexFormat) CoordinateOffset() int { return f.StagedCount() }

// Stride returns the size of one vertex in bytes.
func (f VertexFormat) Stride() int {
	return f.vertexAttributeCount * elementSize
}

// Count returns the element count of a single category.
//
// Parameters:
//   - c: the category to query
//
// Returns:
//   - int: the number of float32 elements the category occupies per vertex
func (f VertexFormat) Count(c Category) int {
	switch c {
	case CategoryTexture:
		return f.textureCount
	case CategoryColor:
		return f.colorCount
	case CategoryNormal:
		return f.normalCount
	case CategoryCoordinate:
		return f.coordinateCount
	}
	return 0
}

// Offset returns the element offset of a single category inside a vertex.
//
// Parameters:
//   - c: the category to query
//
// Returns:
//   - int: the element (not byte) offset of the category
func (f VertexFormat) Offset(c Category) int {
	switch c {
	case CategoryColor:
		return f.ColorOffset()
	case CategoryNormal:
		return f.NormalOffset()
	case CategoryCoordinate:
		return f.CoordinateOffset()
	}
	return f.TextureOffset()
}

// Attributes describes every category with a non-zero count, in layout order.
// The degenerate zero format has no attributes.
//
// Returns:
//   - []Attribute: one entry per present category
func (f VertexFormat) Attributes() []Attribute {
	attrs := make([]Attribute, 0, 4)
	for _, c := range categories {
		n := f.Count(c)
		if n == 0 {
			continue
		}
		attrs = append(attrs, Attribute{
			Category: c,
			Size:     n,
			Offset:   f.Offset(c) * elementSize,
			Stride:   f.Stride(),
		})
	}
	return attrs
}

func (f VertexFormat) String() string {
	return fmt.Sprintf("VertexFormat{texture: %d, color: %d, normal: %d, coordinate: %d}",
		f.textureCount, f.colorCount, f.normalCount, f.coordinateCount)
}
