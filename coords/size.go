// SPDX-License-Identifier: MIT

package coords

import (
	"strconv"
	"strings"
)

// Size is the declared extent of a matrix, one entry per dimension.
// Treat it as immutable once attached to a matrix; use Clone before editing.
type Size []int64

// NewSize validates and copies the given extents.
// Errors: ErrArity for zero or too many dimensions, ErrBadSize for negatives.
// Zero-length dimensions are legal and describe an empty matrix.
func NewSize(extents ...int64) (Size, error) {
	if len(extents) == 0 || len(extents) > MaxDimensions {
		return nil, coordsErrorf("NewSize", ErrArity)
	}
	for _, e := range extents {
		if e < 0 {
			return nil, coordsErrorf("NewSize", ErrBadSize)
		}
	}
	out := make(Size, len(extents))
	copy(out, extents)

	return out, nil
}

// Dims returns the number of dimensions.
func (s Size) Dims() int { return len(s) }

// Rows returns s[0] (0 for an empty Size).
func (s Size) Rows() int64 {
	if len(s) == 0 {
		return 0
	}

	return s[0]
}

// Columns returns s[1] (1 for a one-dimensional Size, 0 for an empty one).
func (s Size) Columns() int64 {
	switch len(s) {
	case 0:
		return 0
	case 1:
		return 1
	default:
		return s[1]
	}
}

// Product returns the number of cells, i.e. the product of all extents.
// An empty Size has product 0.
func (s Size) Product() int64 {
	if len(s) == 0 {
		return 0
	}
	p := int64(1)
	for _, e := range s {
		p *= e
	}

	return p
}

// IsEmpty reports whether the Size describes zero cells.
func (s Size) IsEmpty() bool { return s.Product() == 0 }

// Contains reports whether c has the same arity as s and lies within bounds.
func (s Size) Contains(c Coordinates) bool {
	return s.Check(c) == nil
}

// Check is Contains with a descriptive error: ErrArity or ErrOutOfRange.
func (s Size) Check(c Coordinates) error {
	if c.Dims() != len(s) {
		return ErrArity
	}
	for d, e := range s {
		v := c.idx[d]
		if v < 0 || v >= e {
			return ErrOutOfRange
		}
	}

	return nil
}

// Equal reports whether both sizes have identical extents.
func (s Size) Equal(o Size) bool {
	if len(s) != len(o) {
		return false
	}
	for d := range s {
		if s[d] != o[d] {
			return false
		}
	}

	return true
}

// Clone returns an independent copy.
func (s Size) Clone() Size {
	out := make(Size, len(s))
	copy(out, s)

	return out
}

// Transpose returns a copy with the first two extents swapped.
func (s Size) Transpose() Size {
	out := s.Clone()
	if len(out) >= 2 {
		out[0], out[1] = out[1], out[0]
	}

	return out
}

// String renders "RxCx...".
func (s Size) String() string {
	parts := make([]string, len(s))
	for d, e := range s {
		parts[d] = strconv.FormatInt(e, 10)
	}

	return strings.Join(parts, "x")
}
