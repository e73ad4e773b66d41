// SPDX-License-Identifier: MIT

// Package linalg holds the linear-algebra kernels that sit on top of the
// matrix engine: the matrix product, LU factorization with partial pivoting,
// inversion, linear solves and determinants.
//
// All kernels read their operands through the coordinate contract, so any
// storage works; dense row-major Double operands take a raw-buffer path.
// Work is split over rows (Mtimes) or right-hand-side columns (Inverse,
// Solve) on the Parallel-For pool configured with matrix.WithPool.
//
// The kernels register themselves under the names "mtimes", "inv", "solve"
// and "det" (see matrix.Kernel).
package linalg
