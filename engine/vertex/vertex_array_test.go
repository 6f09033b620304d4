package vertex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexArrayClear(t *testing.T) {
	va := NewVertexArray(4, NewVertexFormat(2, 3, 0, 3))
	va.SetTexture(0.5, 0.25)
	va.SetColor(1, 0, 0)
	va.AddVertex(1, 2, 3)
	va.AddVertex(4, 5, 6)
	require.Equal(t, 2, va.VertexCount())

	va.Clear()

	assert.Equal(t, 0, va.VertexCount())
	assert.Empty(t, va.Data())
	assert.Equal(t, make([]float32, 8), va.Staging())

	// The whole main buffer is zeroed, not just the committed region.
	full := va.(*vertexArray).data
	assert.Equal(t, make([]float32, len(full)), full)
}

func TestVertexArrayStagingPersistsAcrossCommits(t *testing.T) {
	va := NewVertexArray(4, NewVertexFormat(0, 3, 0, 3))
	va.SetColor(1, 0, 0)
	va.AddVertex(0, 0, 0)
	va.AddVertex(1, 1, 1)

	assert.Equal(t, []float32{
		1, 0, 0, 0, 0, 0,
		1, 0, 0, 1, 1, 1,
	}, va.Data())
}

func TestVertexArrayLayoutOrder(t *testing.T) {
	va := NewVertexArray(1, NewVertexFormat(2, 4, 3, 3))
	va.SetTexture(0.1, 0.2)
	va.SetColor(0.3, 0.4, 0.5, 0.6)
	va.SetNormal(0, 1, 0)
	va.AddVertex(7, 8, 9)

	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0, 1, 0, 7, 8, 9}, va.Data())
}

func TestVertexArrayZeroFormatRefusesCommits(t *testing.T) {
	va := NewVertexArray(4, VertexFormat{})

	ce := requireContractPanic(t, func() { va.AddVertex() })
	assert.Equal(t, "VertexArray.AddVertex", ce.Op)
	ce = requireContractPanic(t, func() { va.AddPrimitive(2) })
	assert.Equal(t, "VertexArray.AddPrimitive", ce.Op)

	va.AddPrimitive(0)
	assert.Zero(t, va.VertexCount())
	assert.Equal(t, 4, va.Remaining())
}

func TestVertexArrayPartialStage(t *testing.T) {
	va := NewVertexArray(2, NewVertexFormat(0, 4, 0, 2))
	va.SetColor(1, 1, 1, 1)
	va.SetColor(0.5, 0.5)
	va.AddVertex(3, 4)

	// A shorter write only overwrites its leading elements.
	assert.Equal(t, []float32{0.5, 0.5, 1, 1, 3, 4}, va.Data())
}

func TestVertexArrayCapacity(t *testing.T) {
	va := NewVertexArray(2, NewVertexFormat(0, 0, 0, 2))
	va.AddVertex(0, 0)
	va.AddVertex(1, 1)
	assert.Equal(t, 0, va.Remaining())

	ce := requireContractPanic(t, func() { va.AddVertex(2, 2) })
	assert.Equal(t, "VertexArray.AddVertex", ce.Op)
	assert.Equal(t, 2, va.VertexCount())
}

func TestVertexArrayOversizedAttributes(t *testing.T) {
	va := NewVertexArray(1, NewVertexFormat(2, 3, 0, 3))
	before := va.Staging()

	ce := requireContractPanic(t, func() { va.SetTexture(1, 2, 3) })
	assert.Equal(t, "VertexArray.SetTexture", ce.Op)

	requireContractPanic(t, func() { va.SetColor(1, 2, 3, 4) })
	requireContractPanic(t, func() { va.SetNormal(0, 1, 0) })

	assert.Equal(t, before, va.Staging())
}

func TestVertexArrayCoordinateCountMismatch(t *testing.T) {
	va := NewVertexArray(2, NewVertexFormat(0, 0, 0, 3))
	requireContractPanic(t, func() { va.AddVertex(1, 2) })
	requireContractPanic(t, func() { va.AddVertex(1, 2, 3, 4) })
	assert.Equal(t, 0, va.VertexCount())
}

func TestVertexArrayAddPrimitive(t *testing.T) {
	f := NewVertexFormat(0, 3, 0, 2)
	va := NewVertexArray(4, f)
	va.SetColor(0.2, 0.4, 0.6)
	va.AddVertex(9, 9)
	staged := va.Staging()

	raw := []float32{
		1, 0, 0, 10, 11,
		0, 1, 0, 12, 13,
	}
	va.AddPrimitive(2, raw...)

	assert.Equal(t, 3, va.VertexCount())
	assert.Equal(t, staged, va.Staging())
	assert.Equal(t, raw, va.Data()[f.VertexAttributeCount():])
}

func TestVertexArrayAddPrimitiveContract(t *testing.T) {
	f := NewVertexFormat(0, 0, 0, 2)
	va := NewVertexArray(2, f)

	requireContractPanic(t, func() { va.AddPrimitive(2, 1, 2, 3) })
	requireContractPanic(t, func() { va.AddPrimitive(3, 1, 2, 3, 4, 5, 6) })
	requireContractPanic(t, func() { va.AddPrimitive(-1) })
	assert.Equal(t, 0, va.VertexCount())

	va.AddPrimitive(0)
	assert.Equal(t, 0, va.VertexCount())
}

func TestVertexArrayBytes(t *testing.T) {
	va := NewVertexArray(2, NewVertexFormat(0, 0, 0, 2))
	assert.Nil(t, va.Bytes())

	va.AddVertex(1, 2)
	assert.Len(t, va.Bytes(), 8)
}

func TestVertexArrayStagingIsCopy(t *testing.T) {
	va := NewVertexArray(1, NewVertexFormat(0, 3, 0, 2))
	va.SetColor(1, 2, 3)
	s := va.Staging()
	s[0] = 42
	assert.Equal(t, float32(1), va.Staging()[0])
}

func TestNewVertexArrayNegativeCapacity(t *testing.T) {
	requireContractPanic(t, func() { NewVertexArray(-1, NewVertexFormat(0, 0, 0, 2)) })
}
