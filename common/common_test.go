package common

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))

	data := []float32{1.5, -2}
	b := SliceToBytes(data)
	assert.Len(t, b, 8)
	assert.Equal(t, math.Float32bits(1.5), binary.NativeEndian.Uint32(b[0:4]))
	assert.Equal(t, math.Float32bits(-2), binary.NativeEndian.Uint32(b[4:8]))

	// The view aliases the source slice.
	data[1] = 3
	assert.Equal(t, math.Float32bits(3), binary.NativeEndian.Uint32(b[4:8]))
}

func TestStructToBytes(t *testing.T) {
	m := mgl32.Ident4()
	b := StructToBytes(&m)
	assert.Len(t, b, 64)
	assert.Equal(t, math.Float32bits(1), binary.NativeEndian.Uint32(b[0:4]))
	assert.Equal(t, uint32(0), binary.NativeEndian.Uint32(b[4:8]))
	assert.Equal(t, math.Float32bits(1), binary.NativeEndian.Uint32(b[60:64]))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, "", Coalesce[string]())
	assert.Equal(t, 0, Coalesce(0, 0))
	assert.Equal(t, 7, Coalesce(7))
}
