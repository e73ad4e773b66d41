// SPDX-License-Identifier: MIT

// Package distance measures how far apart the rows of a matrix are.
//
// Pairwise(m, metric, ret) is a calculation whose cell (i,j) is the distance
// between rows i and j of m, so a distance matrix can be materialized
// (RetNew, filled on the Parallel-For pool) or kept as a live view
// (RetLink) that follows later writes to m.
//
// Metrics: Euclidean, Manhattan, Chebyshev, Cosine, and Dynamic Time
// Warping (DTW), which aligns two sequences that vary in speed before
// summing |a[i]-b[j]| along the cheapest warping path:
//
//	D[0][0] = 0, D[i][0] = D[0][j] = +∞
//	D[i][j] = |a[i-1]-b[j-1]| + min(D[i-1][j-1], D[i-1][j]+p, D[i][j-1]+p)
//
// where p is the slope penalty. A Sakoe–Chiba window bounds |i-j|.
// DTW keeps two DP rows; WarpingPath keeps the full table (as a dense
// matrix) to recover the path.
package distance
