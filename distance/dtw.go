// SPDX-License-Identifier: MIT

package distance

import (
	"math"

	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/matrix"
	"github.com/katalvlaran/lvmatrix/storage"
)

const (
	panicWindowInvalid  = "distance: WithWindow: window must be >= 0"
	panicPenaltyInvalid = "distance: WithSlopePenalty: penalty must be finite and >= 0"
)

// Option configures DTW.
type Option func(*dtwOptions)

type dtwOptions struct {
	window  int // 0: unconstrained
	penalty float64
}

// WithWindow limits the warping to |i-j| <= w (Sakoe–Chiba band). Zero
// removes the limit.
func WithWindow(w int) Option {
	if w < 0 {
		panic(panicWindowInvalid)
	}

	return func(o *dtwOptions) { o.window = w }
}

// WithSlopePenalty adds p to every insertion or deletion step.
func WithSlopePenalty(p float64) Option {
	if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		panic(panicPenaltyInvalid)
	}

	return func(o *dtwOptions) { o.penalty = p }
}

func gather(opts []Option) dtwOptions {
	var o dtwOptions
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o dtwOptions) outside(i, j int) bool {
	if o.window == 0 {
		return false
	}
	d := i - j
	if d < 0 {
		d = -d
	}

	return d > o.window
}

// DTW returns the dynamic time warping distance between a and b using two
// DP rows. A window narrower than |len(a)-len(b)| yields +Inf.
// Errors: ErrEmptySequence.
// Complexity: O(n·m) time, O(m) space.
func DTW(a, b []float64, opts ...Option) (float64, error) {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0, distanceErrorf("DTW", ErrEmptySequence)
	}
	o := gather(opts)
	inf := math.Inf(1)

	prev, curr := make([]float64, m+1), make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}
	for i := 1; i <= n; i++ {
		curr[0] = inf
		for j := 1; j <= m; j++ {
			if o.outside(i, j) {
				curr[j] = inf
				continue
			}
			curr[j] = math.Abs(a[i-1]-b[j-1]) + min(prev[j-1], prev[j]+o.penalty, curr[j-1]+o.penalty)
		}
		prev, curr = curr, prev
	}

	return prev[m], nil
}

// WarpingPath returns the DTW distance together with the optimal alignment:
// a sequence of (i,j) coordinates pairing a[i] with b[j], from (0,0) to
// (len(a)-1, len(b)-1). Ties prefer the diagonal step.
// Errors: ErrEmptySequence.
// Complexity: O(n·m) time and space.
func WarpingPath(a, b []float64, opts ...Option) (float64, []coords.Coordinates, error) {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0, nil, distanceErrorf("WarpingPath", ErrEmptySequence)
	}
	o := gather(opts)
	table, err := matrix.New(coords.Size{int64(n + 1), int64(m + 1)},
		matrix.WithStorage(matrix.DenseStorage), matrix.WithLayout(storage.RowMajor))
	if err != nil {
		return 0, nil, distanceErrorf("WarpingPath", err)
	}
	d, _, _ := matrix.AsDoubleArray(table)
	w := m + 1
	inf := math.Inf(1)
	for j := 1; j <= m; j++ {
		d[j] = inf
	}
	for i := 1; i <= n; i++ {
		d[i*w] = inf
		for j := 1; j <= m; j++ {
			if o.outside(i, j) {
				d[i*w+j] = inf
				continue
			}
			d[i*w+j] = math.Abs(a[i-1]-b[j-1]) + min(d[(i-1)*w+j-1], d[(i-1)*w+j]+o.penalty, d[i*w+j-1]+o.penalty)
		}
	}
	dist := d[n*w+m]
	if math.IsInf(dist, 1) {
		return dist, nil, nil
	}

	var path []coords.Coordinates
	i, j := n, m
	for {
		path = append(path, coords.Of2(int64(i-1), int64(j-1)))
		if i == 1 && j == 1 {
			break
		}
		diag, up, left := inf, inf, inf
		if i > 1 && j > 1 {
			diag = d[(i-1)*w+j-1]
		}
		if i > 1 {
			up = d[(i-1)*w+j] + o.penalty
		}
		if j > 1 {
			left = d[i*w+j-1] + o.penalty
		}
		switch {
		case diag <= up && diag <= left:
			i, j = i-1, j-1
		case up <= left:
			i--
		default:
			j--
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return dist, path, nil
}
