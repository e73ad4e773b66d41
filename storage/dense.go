// SPDX-License-Identifier: MIT

package storage

import (
	"errors"
	"math"

	"github.com/katalvlaran/lvmatrix/coords"
)

// method tags used in error wrappers
const (
	ctxGet = "Get"
	ctxSet = "Set"
)

// Layout selects the stride formula of a Dense store.
type Layout int

const (
	// RowMajor keeps the last dimension contiguous: offset = i*cols + j in 2-D.
	RowMajor Layout = iota
	// ColumnMajor keeps the first dimension contiguous: offset = i + j*rows in 2-D.
	ColumnMajor
)

// String returns "row-major" or "column-major".
func (l Layout) String() string {
	if l == ColumnMajor {
		return "column-major"
	}

	return "row-major"
}

// Store is the read/write-by-coordinate contract shared by all backends.
type Store[T any] interface {
	// Get returns the value at c.
	Get(c coords.Coordinates) (T, error)
	// Set stores v at c.
	Set(c coords.Coordinates, v T) error
	// Size returns the declared extents.
	Size() coords.Size
	// Len returns the number of resident cells.
	Len() int
}

// Dense is a flat array addressed through a generalized stride vector.
//   - size holds the declared extents.
//   - strides[d] is the distance in data between neighbours along axis d.
//   - data has exactly product(size) elements.
type Dense[T any] struct {
	size    coords.Size
	strides []int64
	layout  Layout
	data    []T
}

// Compile-time check.
var _ Store[float64] = (*Dense[float64])(nil)

// NewDense allocates a zero-filled dense store.
// Implementation:
//   - Stage 1: validate the size (arity, non-negative extents, cell count fits int).
//   - Stage 2: compute strides for the requested layout.
//   - Stage 3: allocate product(size) zero values.
//
// Zero-length dimensions are legal; they yield an empty buffer.
// Errors: ErrBadShape, ErrTooLarge.
// Complexity: O(product(size)).
func NewDense[T any](size coords.Size, layout Layout) (*Dense[T], error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}
	n := size.Product()
	if n < 0 || n > int64(math.MaxInt) { // negative means the product overflowed
		return nil, ErrTooLarge
	}

	return &Dense[T]{
		size:    size.Clone(),
		strides: computeStrides(size, layout),
		layout:  layout,
		data:    make([]T, n),
	}, nil
}

// WrapDense adopts data as the backing buffer (no copy). len(data) must equal
// product(size).
func WrapDense[T any](size coords.Size, layout Layout, data []T) (*Dense[T], error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}
	if int64(len(data)) != size.Product() {
		return nil, ErrBadShape
	}

	return &Dense[T]{
		size:    size.Clone(),
		strides: computeStrides(size, layout),
		layout:  layout,
		data:    data,
	}, nil
}

// validateSize checks arity and extents.
func validateSize(size coords.Size) error {
	if len(size) == 0 || len(size) > coords.MaxDimensions {
		return ErrBadShape
	}
	for _, e := range size {
		if e < 0 {
			return ErrBadShape
		}
	}

	return nil
}

// computeStrides returns per-axis strides for the layout.
// Row-major: stride[last] = 1, stride[d] = stride[d+1]*size[d+1].
// Column-major: stride[0] = 1, stride[d] = stride[d-1]*size[d-1].
func computeStrides(size coords.Size, layout Layout) []int64 {
	n := len(size)
	strides := make([]int64, n)
	acc := int64(1)
	if layout == ColumnMajor {
		for d := 0; d < n; d++ {
			strides[d] = acc
			acc *= size[d]
		}

		return strides
	}
	for d := n - 1; d >= 0; d-- {
		strides[d] = acc
		acc *= size[d]
	}

	return strides
}

// Offset maps c to its index in the flat buffer.
// Errors: ErrArity when c has the wrong dimension count, ErrOutOfRange when
// any component is outside [0, size[d]).
// Complexity: O(dims).
func (s *Dense[T]) Offset(c coords.Coordinates) (int, error) {
	if c.Dims() != len(s.size) {
		return 0, ErrArity
	}
	var off int64
	for d, e := range s.size {
		v := c.At(d)
		if v < 0 || v >= e {
			return 0, ErrOutOfRange
		}
		off += v * s.strides[d]
	}

	return int(off), nil
}

// Get returns the value at c or a wrapped ErrOutOfRange/ErrArity.
func (s *Dense[T]) Get(c coords.Coordinates) (T, error) {
	off, err := s.Offset(c)
	if err != nil {
		var zero T
		return zero, storageErrorf(ctxGet, c, err)
	}

	return s.data[off], nil
}

// Set stores v at c or returns a wrapped ErrOutOfRange/ErrArity.
func (s *Dense[T]) Set(c coords.Coordinates, v T) error {
	off, err := s.Offset(c)
	if err != nil {
		return storageErrorf(ctxSet, c, err)
	}
	s.data[off] = v

	return nil
}

// Size returns a copy of the declared extents.
func (s *Dense[T]) Size() coords.Size { return s.size.Clone() }

// Len returns product(size): every cell of a dense store is resident.
func (s *Dense[T]) Len() int { return len(s.data) }

// Layout returns the stride formula in use.
func (s *Dense[T]) Layout() Layout { return s.layout }

// Strides returns a copy of the stride vector.
func (s *Dense[T]) Strides() []int64 {
	out := make([]int64, len(s.strides))
	copy(out, s.strides)

	return out
}

// Raw exposes the backing slice without copying. Writes through it are
// visible to the store; the caller must respect Layout when interpreting it.
func (s *Dense[T]) Raw() []T { return s.data }

// Clone returns an independent deep copy with the same layout.
func (s *Dense[T]) Clone() *Dense[T] {
	cp := make([]T, len(s.data))
	copy(cp, s.data)

	return &Dense[T]{
		size:    s.size.Clone(),
		strides: s.Strides(),
		layout:  s.layout,
		data:    cp,
	}
}

// IsOutOfRange reports whether err stems from a bounds or arity violation.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange) || errors.Is(err, ErrArity)
}
