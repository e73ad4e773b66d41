// SPDX-License-Identifier: MIT

package coords

import (
	"strconv"
	"strings"
)

// MaxDimensions is the largest number of axes a Coordinates value can carry.
const MaxDimensions = 8

// Coordinates is an immutable N-tuple of non-negative indices.
//
// The components live in a fixed-size array so the whole value is comparable:
// two Coordinates are == iff they have the same arity and equal components,
// which makes them valid map keys without any hashing helper.
type Coordinates struct {
	n   uint8                // number of used components
	idx [MaxDimensions]int64 // components; entries >= n are always zero
}

// New builds Coordinates from the given indices.
// Errors: ErrArity for zero or more than MaxDimensions components,
// ErrNegativeIndex for any component below zero.
// Complexity: O(len(idx)).
func New(idx ...int64) (Coordinates, error) {
	var c Coordinates
	if len(idx) == 0 || len(idx) > MaxDimensions {
		return c, coordsErrorf("New", ErrArity)
	}
	for d, v := range idx {
		if v < 0 {
			return Coordinates{}, coordsErrorf("New", ErrNegativeIndex)
		}
		c.idx[d] = v
	}
	c.n = uint8(len(idx))

	return c, nil
}

// MustNew is New that panics on invalid input. Intended for literals in
// tests and examples where the indices are known to be valid.
func MustNew(idx ...int64) Coordinates {
	c, err := New(idx...)
	if err != nil {
		panic(err)
	}

	return c
}

// Of2 is the allocation-free constructor for the common 2-D case.
// Negative components are not checked here; Size.Contains rejects them.
func Of2(row, col int64) Coordinates {
	return Coordinates{n: 2, idx: [MaxDimensions]int64{row, col}}
}

// Dims returns the number of components.
func (c Coordinates) Dims() int { return int(c.n) }

// At returns component d, or 0 when d is outside [0, Dims()).
func (c Coordinates) At(d int) int64 {
	if d < 0 || d >= int(c.n) {
		return 0
	}

	return c.idx[d]
}

// Row is shorthand for At(0).
func (c Coordinates) Row() int64 { return c.idx[0] }

// Column is shorthand for At(1).
func (c Coordinates) Column() int64 { return c.idx[1] }

// Slice returns a fresh copy of the components.
func (c Coordinates) Slice() []int64 {
	out := make([]int64, c.n)
	copy(out, c.idx[:c.n])

	return out
}

// Equal reports whether c and o address the same cell.
func (c Coordinates) Equal(o Coordinates) bool { return c == o }

// Less orders coordinates lexicographically (lower arity first on ties).
func (c Coordinates) Less(o Coordinates) bool {
	n := min(c.n, o.n)
	for d := uint8(0); d < n; d++ {
		if c.idx[d] != o.idx[d] {
			return c.idx[d] < o.idx[d]
		}
	}

	return c.n < o.n
}

// With returns a copy of c whose component d is replaced by v.
// The arity is unchanged; an invalid d returns c as is.
func (c Coordinates) With(d int, v int64) Coordinates {
	if d < 0 || d >= int(c.n) || v < 0 {
		return c
	}
	c.idx[d] = v

	return c
}

// Transpose swaps the first two components. Coordinates with fewer than two
// components are returned unchanged.
func (c Coordinates) Transpose() Coordinates {
	if c.n < 2 {
		return c
	}
	c.idx[0], c.idx[1] = c.idx[1], c.idx[0]

	return c
}

// String renders "(i,j,...)".
func (c Coordinates) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for d := uint8(0); d < c.n; d++ {
		if d > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(c.idx[d], 10))
	}
	b.WriteByte(')')

	return b.String()
}
