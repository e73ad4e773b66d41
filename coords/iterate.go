// SPDX-License-Identifier: MIT

package coords

import "iter"

// All returns every coordinate of size in row-major order (last dimension
// varies fastest). The sequence is lazy and restartable: each range over it
// starts a fresh cursor. A zero-length dimension yields nothing.
//
// Complexity: O(product(size)) over a full traversal, O(1) memory.
func All(size Size) iter.Seq[Coordinates] {
	s := size.Clone() // guard against later edits by the caller
	return func(yield func(Coordinates) bool) {
		cur := NewCursor(s)
		for cur.HasNext() {
			if !yield(cur.Next()) {
				return
			}
		}
	}
}

// Count drains seq and returns the number of items.
func Count(seq iter.Seq[Coordinates]) int64 {
	var n int64
	for range seq {
		n++
	}

	return n
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq[Coordinates]) []Coordinates {
	var out []Coordinates
	for c := range seq {
		out = append(out, c)
	}

	return out
}

// FromIndex converts a row-major linear index into Coordinates of size.
// Errors: ErrOutOfRange when linear is outside [0, product(size)).
func FromIndex(size Size, linear int64) (Coordinates, error) {
	if linear < 0 || linear >= size.Product() {
		return Coordinates{}, coordsErrorf("FromIndex", ErrOutOfRange)
	}
	var c Coordinates
	c.n = uint8(len(size))
	for d := len(size) - 1; d >= 0; d-- {
		c.idx[d] = linear % size[d]
		linear /= size[d]
	}

	return c, nil
}

// ToIndex converts Coordinates into the row-major linear index within size.
// Errors: ErrArity / ErrOutOfRange when c is not inside size.
func ToIndex(size Size, c Coordinates) (int64, error) {
	if err := size.Check(c); err != nil {
		return 0, coordsErrorf("ToIndex", err)
	}
	var linear int64
	for d := range size {
		linear = linear*size[d] + c.idx[d]
	}

	return linear, nil
}

// Cursor walks a Size in row-major order with explicit HasNext/Next calls.
// A Cursor is single-use until Reset; it is not safe for concurrent use.
type Cursor struct {
	size Size
	cur  Coordinates
	done bool
}

// NewCursor positions a cursor before the first coordinate of size.
func NewCursor(size Size) *Cursor {
	c := &Cursor{size: size}
	c.Reset()

	return c
}

// Reset rewinds the cursor to the first coordinate.
func (c *Cursor) Reset() {
	c.cur = Coordinates{n: uint8(len(c.size))}
	c.done = len(c.size) == 0 || len(c.size) > MaxDimensions || c.size.IsEmpty()
}

// HasNext reports whether Next will return another coordinate.
func (c *Cursor) HasNext() bool { return !c.done }

// Next returns the current coordinate and advances. Calling Next after
// HasNext returned false returns the zero Coordinates.
func (c *Cursor) Next() Coordinates {
	if c.done {
		return Coordinates{}
	}
	out := c.cur
	// odometer increment, last dimension fastest
	d := len(c.size) - 1
	for ; d >= 0; d-- {
		c.cur.idx[d]++
		if c.cur.idx[d] < c.size[d] {
			break
		}
		c.cur.idx[d] = 0
	}
	if d < 0 {
		c.done = true
	}

	return out
}
