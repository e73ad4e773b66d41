// SPDX-License-Identifier: MIT

// Package lvmatrix is a coordinate-addressed matrix computation engine.
//
// A matrix is read and written through N-dimensional integer coordinates and
// backed interchangeably by dense or sparse storage. Operations are
// calculations that can be materialized three ways:
//
//	RetNew : evaluate into fresh storage (dense results filled in parallel)
//	RetLink: keep a live view that re-reads its sources on every access
//	RetOrig: write the result back into the first operand
//
// Everything lives in subpackages:
//
//	coords/    : Coordinates, Size and row-major iteration
//	storage/   : generic Dense (row/column major) and Sparse (optionally LRU-bounded) stores
//	parallel/  : the Parallel-For worker pool (block or equidistant partitioning)
//	annotation/: matrix and per-axis labels
//	matrix/    : the Matrix facade, value kinds, Calc, events and the kernel registry
//	ops/       : elementwise, scalar, transpose and reduction calculations
//	linalg/    : matrix product, LU, inverse, solve, determinant
//	distance/  : pairwise row distances and dynamic time warping
//	config/    : YAML configuration for pools, storage and logging
//
// Quick example:
//
//	a, _ := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
//	b, _ := ops.Transpose(a, matrix.RetLink) // view, nothing evaluated
//	c, _ := ops.Plus(a, b, matrix.RetNew)    // [[2 5] [5 8]]
//
// The lvmatrix command (cmd/lvmatrix) runs any registered kernel over
// matrix literals:
//
//	lvmatrix calc plus "[[1,2],[3,4]]" "[[1,1],[1,1]]"
package lvmatrix
