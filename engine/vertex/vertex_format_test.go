package vertex

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireContractPanic runs fn and requires it to panic with a *ContractError.
func requireContractPanic(t *testing.T, fn func()) *ContractError {
	t.Helper()
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		fn()
	}()
	require.NotNil(t, recovered, "expected a contract violation panic")
	err, ok := recovered.(error)
	require.True(t, ok, "panic value %v is not an error", recovered)
	require.True(t, errors.Is(err, ErrContract), "panic %v is not a contract violation", err)
	var ce *ContractError
	require.True(t, errors.As(err, &ce))
	return ce
}

func TestVertexFormatAttributeCount(t *testing.T) {
	f := NewVertexFormat(2, 3, 0, 3)
	assert.Equal(t, 8, f.VertexAttributeCount())
	assert.Equal(t, 5, f.StagedCount())
	assert.Equal(t, 32, f.Stride())
}

func TestVertexFormatZeroValue(t *testing.T) {
	var f VertexFormat
	assert.Equal(t, 0, f.VertexAttributeCount())
	assert.Empty(t, f.Attributes())
	assert.Equal(t, VertexFormat{}, f)
}

func TestVertexFormatBounds(t *testing.T) {
	valid := []struct {
		name                              string
		texture, color, normal, coordinate int
	}{
		{"minimal", 0, 0, 0, 2},
		{"maximal", 3, 4, 3, 4},
		{"textured", 2, 0, 0, 3},
		{"lit", 0, 3, 3, 3},
	}
	for _, tc := range valid {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, ValidateVertexFormat(tc.texture, tc.color, tc.normal, tc.coordinate))
			assert.NotPanics(t, func() { NewVertexFormat(tc.texture, tc.color, tc.normal, tc.coordinate) })
		})
	}

	invalid := []struct {
		name                              string
		texture, color, normal, coordinate int
	}{
		{"texture too large", 4, 0, 0, 3},
		{"negative texture", -1, 0, 0, 3},
		{"color too large", 0, 5, 0, 3},
		{"normal not 0 or 3", 0, 0, 2, 3},
		{"coordinate too small", 0, 0, 0, 1},
		{"coordinate too large", 0, 0, 0, 5},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateVertexFormat(tc.texture, tc.color, tc.normal, tc.coordinate)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrContract)

			ce := requireContractPanic(t, func() { NewVertexFormat(tc.texture, tc.color, tc.normal, tc.coordinate) })
			assert.Equal(t, "NewVertexFormat", ce.Op)
		})
	}
}

func TestVertexFormatOffsets(t *testing.T) {
	f := NewVertexFormat(2, 4, 3, 3)
	assert.Equal(t, 0, f.TextureOffset())
	assert.Equal(t, 2, f.ColorOffset())
	assert.Equal(t, 6, f.NormalOffset())
	assert.Equal(t, 9, f.CoordinateOffset())

	assert.Equal(t, []Attribute{
		{Category: CategoryTexture, Size: 2, Offset: 0, Stride: 48},
		{Category: CategoryColor, Size: 4, Offset: 8, Stride: 48},
		{Category: CategoryNormal, Size: 3, Offset: 24, Stride: 48},
		{Category: CategoryCoordinate, Size: 3, Offset: 36, Stride: 48},
	}, f.Attributes())
}

func TestVertexFormatAttributesSkipEmptyCategories(t *testing.T) {
	f := NewVertexFormat(0, 3, 0, 2)
	attrs := f.Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, CategoryColor, attrs[0].Category)
	assert.Equal(t, 0, attrs[0].Offset)
	assert.Equal(t, CategoryCoordinate, attrs[1].Category)
	assert.Equal(t, 12, attrs[1].Offset)
	assert.Equal(t, 20, attrs[1].Stride)
}

func TestCategoryLocation(t *testing.T) {
	assert.Equal(t, uint32(0), CategoryCoordinate.Location())
	assert.Equal(t, uint32(1), CategoryTexture.Location())
	assert.Equal(t, uint32(2), CategoryColor.Location())
	assert.Equal(t, uint32(3), CategoryNormal.Location())
}
