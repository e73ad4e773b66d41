// SPDX-License-Identifier: MIT

package linalg

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/matrix"
)

// Inverse returns A⁻¹ as a fresh dense Double matrix.
// Implementation:
//   - Stage 1: factorize P·A = L·U (fails fast on a vanishing pivot).
//   - Stage 2: solve L·U·x = P·eⱼ for every identity column j, one
//     Parallel-For step per column, writing column j of the result.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, ErrSingular.
// Complexity: O(n³) time, O(n²) space.
func Inverse(m matrix.Matrix, opts ...matrix.Option) (matrix.Matrix, error) {
	f, err := Factorize(m)
	if err != nil {
		return nil, linalgErrorf(opInverse, err)
	}
	o := matrix.ResolveOptions(opts...)
	n := f.n
	out := make([]float64, n*n)
	err = o.Pool().For(0, n-1, func(j int) error {
		x := make([]float64, n)
		f.solveInto(x, func(i int) float64 {
			if i == j {
				return 1
			}
			return 0
		})
		for i, v := range x {
			out[i*n+j] = v
		}
		return nil
	})
	if err != nil {
		return nil, linalgErrorf(opInverse, err)
	}

	return fromRowMajor(int64(n), int64(n), out, o)
}

// Solve returns X with A·X = B for a square A and a B with as many rows as
// A. Columns of B are solved in parallel.
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, ErrSingular.
func Solve(a, b matrix.Matrix, opts ...matrix.Option) (matrix.Matrix, error) {
	if err := matrix.Validate2D(b); err != nil {
		return nil, linalgErrorf(opSolve, err)
	}
	f, err := Factorize(a)
	if err != nil {
		return nil, linalgErrorf(opSolve, err)
	}
	if b.Size().Rows() != int64(f.n) {
		return nil, linalgErrorf(opSolve, fmt.Errorf("%s \\ %s: %w", a.Size(), b.Size(), matrix.ErrDimensionMismatch))
	}
	bd, err := rowMajor(b)
	if err != nil {
		return nil, linalgErrorf(opSolve, err)
	}

	o := matrix.ResolveOptions(opts...)
	n, cols := f.n, int(b.Size().Columns())
	out := make([]float64, n*cols)
	err = o.Pool().For(0, cols-1, func(j int) error {
		x := make([]float64, n)
		f.solveInto(x, func(i int) float64 { return bd[i*cols+j] })
		for i, v := range x {
			out[i*cols+j] = v
		}
		return nil
	})
	if err != nil {
		return nil, linalgErrorf(opSolve, err)
	}

	return fromRowMajor(int64(n), int64(cols), out, o)
}

// Det returns the determinant of the square matrix m. A singular m yields
// 0 without error.
func Det(m matrix.Matrix) (float64, error) {
	f, err := Factorize(m)
	if errors.Is(err, ErrSingular) {
		return 0, nil
	}
	if err != nil {
		return 0, linalgErrorf(opDet, err)
	}

	return f.Det(), nil
}

// Identity returns the n×n identity matrix.
func Identity(n int64, opts ...matrix.Option) (matrix.Matrix, error) {
	return matrix.Identity(n, opts...)
}

// Scalar wraps v as a 1×1 Double matrix.
func Scalar(v float64) matrix.Matrix {
	m, err := matrix.New(coords.Size{1, 1},
		matrix.WithStorage(matrix.DenseStorage), matrix.WithValueKind(matrix.Double))
	if err != nil {
		panic(err) // a 1×1 dense double matrix always allocates
	}
	out, _, _ := matrix.AsDoubleArray(m)
	out[0] = v

	return m
}
