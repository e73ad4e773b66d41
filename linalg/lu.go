// SPDX-License-Identifier: MIT

package linalg

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/matrix"
)

// DefaultSingularTolerance scales the pivot threshold: a pivot whose
// magnitude is below n·DefaultSingularTolerance·max|a[i,j]| is treated as
// zero.
const DefaultSingularTolerance = 1e-14

// LU is the factorization P·A = L·U of a square matrix with partial
// pivoting. L is unit lower triangular and U upper triangular; both are
// packed into one row-major buffer.
type LU struct {
	n    int
	lu   []float64
	perm []int // row i of P·A is row perm[i] of A
	sign float64
}

// Factorize computes the LU factorization of the square matrix m.
// Implementation:
//   - Stage 1: validate m (2-D, square) and copy it row-major.
//   - Stage 2: for each column k pick the row with the largest |a[i,k]|,
//     swap it into place, and eliminate below the pivot (Doolittle order).
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, ErrSingular.
// Complexity: O(n³) time, O(n²) space.
func Factorize(m matrix.Matrix) (*LU, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, linalgErrorf(opLU, err)
	}
	src, err := rowMajor(m)
	if err != nil {
		return nil, linalgErrorf(opLU, err)
	}
	n := int(m.Size().Rows())
	f := &LU{n: n, lu: append([]float64(nil), src...), perm: make([]int, n), sign: 1}
	for i := range f.perm {
		f.perm[i] = i
	}

	var scale float64
	for _, v := range f.lu {
		scale = math.Max(scale, math.Abs(v))
	}
	tol := float64(n) * DefaultSingularTolerance * scale

	a := f.lu
	for k := 0; k < n; k++ {
		p := k
		for i := k + 1; i < n; i++ {
			if math.Abs(a[i*n+k]) > math.Abs(a[p*n+k]) {
				p = i
			}
		}
		if math.Abs(a[p*n+k]) <= tol {
			return nil, linalgErrorf(opLU, fmt.Errorf("pivot %d: %w", k, ErrSingular))
		}
		if p != k {
			for j := 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			f.perm[k], f.perm[p] = f.perm[p], f.perm[k]
			f.sign = -f.sign
		}
		pivot := a[k*n+k]
		for i := k + 1; i < n; i++ {
			l := a[i*n+k] / pivot
			a[i*n+k] = l
			if l == 0 {
				continue
			}
			for j := k + 1; j < n; j++ {
				a[i*n+j] -= l * a[k*n+j]
			}
		}
	}

	return f, nil
}

// Size returns the order of the factorized matrix.
func (f *LU) Size() int { return f.n }

// Det returns det(A).
func (f *LU) Det() float64 {
	d := f.sign
	for i := 0; i < f.n; i++ {
		d *= f.lu[i*f.n+i]
	}

	return d
}

// SolveVec solves A·x = b for one right-hand side. b is not modified.
func (f *LU) SolveVec(b []float64) ([]float64, error) {
	if len(b) != f.n {
		return nil, linalgErrorf(opSolve, fmt.Errorf("rhs length %d for order %d: %w", len(b), f.n, matrix.ErrDimensionMismatch))
	}
	x := make([]float64, f.n)
	f.solveInto(x, func(i int) float64 { return b[i] })

	return x, nil
}

// solveInto writes the solution for rhs into x: forward substitution with
// the unit lower factor, then back substitution with the upper one.
func (f *LU) solveInto(x []float64, rhs func(i int) float64) {
	n, a := f.n, f.lu
	for i := 0; i < n; i++ {
		sum := rhs(f.perm[i])
		for k := 0; k < i; k++ {
			sum -= a[i*n+k] * x[k]
		}
		x[i] = sum
	}
	for i := n - 1; i >= 0; i-- {
		sum := x[i]
		for k := i + 1; k < n; k++ {
			sum -= a[i*n+k] * x[k]
		}
		x[i] = sum / a[i*n+i]
	}
}

// L returns the unit lower triangular factor.
func (f *LU) L() matrix.Matrix {
	return f.factor(func(i, j int) (float64, bool) {
		switch {
		case i == j:
			return 1, true
		case j < i:
			return f.lu[i*f.n+j], true
		default:
			return 0, false
		}
	})
}

// U returns the upper triangular factor.
func (f *LU) U() matrix.Matrix {
	return f.factor(func(i, j int) (float64, bool) {
		if j >= i {
			return f.lu[i*f.n+j], true
		}
		return 0, false
	})
}

// P returns the row permutation as a matrix, so that P·A = L·U.
func (f *LU) P() matrix.Matrix {
	return f.factor(func(i, j int) (float64, bool) { return 1, f.perm[i] == j })
}

func (f *LU) factor(cell func(i, j int) (float64, bool)) matrix.Matrix {
	m, _ := matrix.New(coords.Size{int64(f.n), int64(f.n)})
	out, _, _ := matrix.AsDoubleArray(m)
	for i := 0; i < f.n; i++ {
		for j := 0; j < f.n; j++ {
			if v, ok := cell(i, j); ok {
				out[i*f.n+j] = v
			}
		}
	}

	return m
}
