// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvmatrix/coords"
)

// New allocates a storage-backed matrix of the given size.
// Defaults: Double values, dense row-major storage; see options.go.
// Errors: ErrBadShape for an empty size, more than coords.MaxDimensions
// extents, negative extents, or a dense size too large to allocate.
func New(size coords.Size, opts ...Option) (Matrix, error) {
	if size.Dims() == 0 || size.Dims() > coords.MaxDimensions {
		return nil, fmt.Errorf("New(%s): %w", size, ErrBadShape)
	}
	o := gatherOptions(opts...)
	if !o.storageSet {
		o.storage = DefaultStorage
	}

	return newStored(size, o)
}

// NewDense is New with dense storage of kind.
func NewDense(kind ValueKind, size ...int64) (Matrix, error) {
	return New(coords.Size(size), WithValueKind(kind), WithStorage(DenseStorage))
}

// NewSparse is New with unbounded sparse storage of kind.
func NewSparse(kind ValueKind, size ...int64) (Matrix, error) {
	return New(coords.Size(size), WithValueKind(kind), WithStorage(SparseStorage))
}

// Zeros returns a dense Double matrix of the given extents.
func Zeros(size ...int64) (Matrix, error) {
	return New(coords.Size(size))
}

// FromRows builds a 2-D Double matrix from row slices. All rows must have
// the same length. Errors: ErrBadShape for ragged or empty input.
func FromRows(rows [][]float64, opts ...Option) (Matrix, error) {
	if len(rows) == 0 {
		return nil, matrixErrorf("FromRows", ErrBadShape)
	}
	cols := len(rows[0])
	for _, r := range rows {
		if len(r) != cols {
			return nil, matrixErrorf("FromRows: ragged rows", ErrBadShape)
		}
	}
	m, err := New(coords.Size{int64(len(rows)), int64(cols)}, append(opts, WithValueKind(Double))...)
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		for j, v := range r {
			if err = m.SetDouble(coords.Of2(int64(i), int64(j)), v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// Identity returns the n×n identity matrix (Double).
func Identity(n int64, opts ...Option) (Matrix, error) {
	m, err := New(coords.Size{n, n}, append(opts, WithValueKind(Double))...)
	if err != nil {
		return nil, err
	}
	for i := int64(0); i < n; i++ {
		if err = m.SetDouble(coords.Of2(i, i), 1); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// At reads m at idx as float64.
func At(m Matrix, idx ...int64) (float64, error) {
	c, err := coords.New(idx...)
	if err != nil {
		return 0, matrixErrorf("At", ErrOutOfRange)
	}

	return m.Double(c)
}

// Set writes v at idx.
func Set(m Matrix, v float64, idx ...int64) error {
	c, err := coords.New(idx...)
	if err != nil {
		return matrixErrorf("Set", ErrOutOfRange)
	}

	return m.SetDouble(c, v)
}

// ToRows copies a 2-D matrix into row slices.
// Errors: ErrDimensionMismatch for non 2-D matrices, read errors from m.
func ToRows(m Matrix) ([][]float64, error) {
	if err := Validate2D(m); err != nil {
		return nil, err
	}
	s := m.Size()
	out := make([][]float64, s.Rows())
	for i := range out {
		out[i] = make([]float64, s.Columns())
		for j := range out[i] {
			v, err := m.Double(coords.Of2(int64(i), int64(j)))
			if err != nil {
				return nil, err
			}
			out[i][j] = v
		}
	}

	return out, nil
}

// AllClose reports whether a and b have the same size and every cell differs
// by at most tol (read as float64). NaN never compares close.
func AllClose(a, b Matrix, tol float64) (bool, error) {
	if err := ValidateSameSize(a, b); err != nil {
		return false, err
	}
	for c := range a.AllCoordinates() {
		x, err := a.Double(c)
		if err != nil {
			return false, err
		}
		y, err := b.Double(c)
		if err != nil {
			return false, err
		}
		if !(math.Abs(x-y) <= tol) {
			return false, nil
		}
	}

	return true, nil
}
