package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShape(t *testing.T) {
	tests := []struct {
		name        string
		dims        []int
		wantSize    int
		wantOffsets []int
		wantErr     error
	}{
		{name: "single", dims: []int{4}, wantSize: 4, wantOffsets: []int{1}},
		{name: "two", dims: []int{2, 3}, wantSize: 6, wantOffsets: []int{1, 2}},
		{name: "three", dims: []int{2, 3, 4}, wantSize: 24, wantOffsets: []int{1, 2, 6}},
		{name: "none", dims: nil, wantErr: ErrNoDimensions},
		{name: "zero dimension", dims: []int{2, 0}, wantErr: ErrEmptyDimension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := NewShape(tt.dims...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, shape.Size())
			assert.Equal(t, tt.wantOffsets, shape.Offsets())
			assert.Equal(t, len(tt.dims), shape.Rank())
			assert.Equal(t, tt.dims, shape.Dims())
		})
	}
}

func TestShapeRoundTrip(t *testing.T) {
	shape, err := NewShape(2, 3, 4)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for a := 0; a < 2; a++ {
		for b := 0; b < 3; b++ {
			for c := 0; c < 4; c++ {
				key, err := shape.Encode(a, b, c)
				require.NoError(t, err)
				assert.Equal(t, a+b*2+c*6, key)
				assert.False(t, seen[key], "key %d produced twice", key)
				seen[key] = true

				subs, err := shape.Decode(key)
				require.NoError(t, err)
				assert.Equal(t, []int{a, b, c}, subs)
			}
		}
	}
	assert.Len(t, seen, shape.Size())
}

func TestShapeOutOfRange(t *testing.T) {
	shape, err := NewShape(2, 3)
	require.NoError(t, err)

	_, err = shape.Encode(2, 0)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = shape.Encode(0, -1)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = shape.Encode(0)
	assert.Error(t, err)

	_, err = shape.Decode(6)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestShapeKeys(t *testing.T) {
	shape, err := NewShape(2, 3)
	require.NoError(t, err)

	keys := shape.Keys()
	require.Len(t, keys, 6)
	for i, k := range keys {
		assert.Equal(t, i, k.Index)
		assert.Equal(t, []int{i % 2, i / 2}, k.Subindices)
	}
}
