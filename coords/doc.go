// SPDX-License-Identifier: MIT

// Package coords defines Coordinates, the unit of addressing for every matrix
// cell, together with Size vectors and lazy, restartable coordinate sequences.
//
// Coordinates is a small comparable value type: it can be used directly as a
// map key (sparse storage) and costs nothing to create on the hot path.
// Up to MaxDimensions axes are supported.
//
// Iteration order is row-major: the last dimension varies fastest.
//
//	size := coords.Size{2, 3}
//	for c := range coords.All(size) {
//		fmt.Println(c) // (0,0) (0,1) (0,2) (1,0) (1,1) (1,2)
//	}
//
// A Size with any zero-length dimension yields an empty sequence.
package coords
