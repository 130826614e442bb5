// Package dispatch implements the mixed-radix flat key used to index N-ary
// visitor dispatch tables.
//
// A key over dimensions (d0, ..., dk-1) packs one subindex per dimension into
// a single integer in [0, d0*...*dk-1). The first dimension is the least
// significant digit.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

var (
	// ErrNoDimensions is returned when a shape is built without dimensions.
	ErrNoDimensions = errors.New("dispatch: shape needs at least one dimension")
	// ErrEmptyDimension is returned when a dimension has size zero.
	ErrEmptyDimension = errors.New("dispatch: dimension size must be positive")
	// ErrOutOfRange is returned for a subindex or key outside its range.
	ErrOutOfRange = errors.New("dispatch: index out of range")
)

// Shape describes the dimensions of a dispatch table.
type Shape struct {
	dims    []int
	offsets []int
	size    int
}

// NewShape builds a Shape for the given dimension sizes.
func NewShape(dims ...int) (Shape, error) {
	if len(dims) == 0 {
		return Shape{}, ErrNoDimensions
	}
	if lo.SomeBy(dims, func(d int) bool { return d <= 0 }) {
		return Shape{}, ErrEmptyDimension
	}

	offsets := make([]int, len(dims))
	offsets[0] = 1
	for i := 1; i < len(dims); i++ {
		offsets[i] = offsets[i-1] * dims[i-1]
	}

	return Shape{
		dims:    append([]int(nil), dims...),
		offsets: offsets,
		size:    lo.Reduce(dims, func(acc, d, _ int) int { return acc * d }, 1),
	}, nil
}

// Size returns the number of distinct keys, the product of all dimensions.
func (s Shape) Size() int { return s.size }

// Rank returns the number of dimensions.
func (s Shape) Rank() int { return len(s.dims) }

// Dims returns a copy of the dimension sizes.
func (s Shape) Dims() []int { return append([]int(nil), s.dims...) }

// Offsets returns a copy of the per-dimension multipliers.
func (s Shape) Offsets() []int { return append([]int(nil), s.offsets...) }

// Encode packs subindices into a flat key.
func (s Shape) Encode(subindices ...int) (int, error) {
	if len(subindices) != len(s.dims) {
		return 0, fmt.Errorf("dispatch: got %d subindices for %d dimensions", len(subindices), len(s.dims))
	}
	key := 0
	for i, sub := range subindices {
		if sub < 0 || sub >= s.dims[i] {
			return 0, fmt.Errorf("%w: subindex %d is %d, dimension size %d", ErrOutOfRange, i, sub, s.dims[i])
		}
		key += sub * s.offsets[i]
	}
	return key, nil
}

// Decode unpacks a flat key into its subindices.
func (s Shape) Decode(key int) ([]int, error) {
	if key < 0 || key >= s.size {
		return nil, fmt.Errorf("%w: key %d, size %d", ErrOutOfRange, key, s.size)
	}
	subs := make([]int, len(s.dims))
	for i := range s.dims {
		subs[i] = (key / s.offsets[i]) % s.dims[i]
	}
	return subs, nil
}

// Key is a decoded flat key.
type Key struct {
	Index      int
	Subindices []int
}

// Keys enumerates every key of the shape in ascending order.
func (s Shape) Keys() []Key {
	keys := make([]Key, s.size)
	for k := 0; k < s.size; k++ {
		subs, _ := s.Decode(k)
		keys[k] = Key{Index: k, Subindices: subs}
	}
	return keys
}
