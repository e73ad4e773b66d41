// SPDX-License-Identifier: MIT

// Package ops provides the elementwise, structural and reducing calculations
// of lvmatrix. Every operation is a matrix.Calculation and every entry point
// takes a matrix.Ret, so the same call can produce a fresh matrix (RetNew),
// a live view (RetLink) or rewrite its first operand (RetOrig).
//
// Binary operations (Plus, Minus, Times, Divide) pick the cheapest path for
// RetNew:
//
//  1. both operands expose raw float64 buffers with the same layout: a direct
//     array loop, chunked over the Parallel-For pool;
//  2. both operands are sparse: a structure-aware loop over populated keys
//     (union for Plus/Minus, intersection for Times);
//  3. otherwise the generic calculation, which evaluates through big decimals
//     whenever an operand is not Double.
//
// Writes through a RetLink view are inverted onto the first operand by
// Negate, Scale and the scalar forms, Transpose, Copy and Convert. All other
// views reject writes with matrix.ErrUnsupportedOperation.
//
// The package registers its operations as named kernels (see kernels.go).
package ops
