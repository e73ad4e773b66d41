// SPDX-License-Identifier: MIT

package distance_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmatrix/annotation"
	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/distance"
	"github.com/katalvlaran/lvmatrix/matrix"
)

func TestDTW(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		opts []distance.Option
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, nil, 0},
		{"stretched", []float64{1, 2, 3}, []float64{1, 2, 2, 3}, nil, 0},
		{"penalty zero", []float64{1, 2, 3}, []float64{1, 1, 2, 3}, []distance.Option{distance.WithSlopePenalty(0)}, 0},
		{"penalty one", []float64{1, 2, 3}, []float64{1, 1, 2, 3}, []distance.Option{distance.WithSlopePenalty(1)}, 1},
		{"offset", []float64{0, 0, 0}, []float64{1, 1, 1}, nil, 3},
		{"window too narrow", []float64{1, 2, 3}, []float64{1, 2, 3, 4, 5}, []distance.Option{distance.WithWindow(1)}, math.Inf(1)},
		{"window wide enough", []float64{1, 2, 3}, []float64{1, 2, 3, 3}, []distance.Option{distance.WithWindow(1)}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := distance.DTW(tc.a, tc.b, tc.opts...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			full, _, err := distance.WarpingPath(tc.a, tc.b, tc.opts...)
			require.NoError(t, err)
			assert.Equal(t, got, full, "two-row and full-table distances differ")
		})
	}
}

func TestDTWEmpty(t *testing.T) {
	_, err := distance.DTW(nil, []float64{1})
	assert.ErrorIs(t, err, distance.ErrEmptySequence)
	_, _, err = distance.WarpingPath([]float64{1}, nil)
	assert.ErrorIs(t, err, distance.ErrEmptySequence)
}

func TestWarpingPath(t *testing.T) {
	dist, path, err := distance.WarpingPath([]float64{1, 2, 3}, []float64{1, 2, 2, 3})
	require.NoError(t, err)
	assert.Zero(t, dist)
	assert.Equal(t, []coords.Coordinates{
		coords.Of2(0, 0), coords.Of2(1, 1), coords.Of2(1, 2), coords.Of2(2, 3),
	}, path)

	// unreachable corner: no path
	dist, path, err = distance.WarpingPath([]float64{1}, []float64{1, 2, 3}, distance.WithWindow(1))
	require.NoError(t, err)
	assert.True(t, math.IsInf(dist, 1))
	assert.Nil(t, path)
}

func TestOptionsPanic(t *testing.T) {
	assert.Panics(t, func() { distance.WithWindow(-1) })
	assert.Panics(t, func() { distance.WithSlopePenalty(-0.5) })
	assert.Panics(t, func() { distance.WithSlopePenalty(math.NaN()) })
}

func TestMetrics(t *testing.T) {
	a, b := []float64{0, 0}, []float64{3, 4}
	tests := []struct {
		metric distance.Metric
		want   float64
	}{
		{distance.Euclidean, 5},
		{distance.Manhattan, 7},
		{distance.Chebyshev, 4},
		{distance.DTWMetric(), 7},
	}
	for _, tc := range tests {
		t.Run(tc.metric.Name, func(t *testing.T) {
			got, err := tc.metric.Fn(a, b)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}

	got, err := distance.Cosine.Fn([]float64{1, 0}, []float64{0, 2})
	require.NoError(t, err)
	assert.InDelta(t, 1, got, 1e-12)
	got, err = distance.Cosine.Fn([]float64{1, 1}, []float64{2, 2})
	require.NoError(t, err)
	assert.InDelta(t, 0, got, 1e-12)

	_, err = distance.Euclidean.Fn([]float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, distance.ErrLengthMismatch)
}

func TestParseMetric(t *testing.T) {
	m, err := distance.ParseMetric("Manhattan")
	require.NoError(t, err)
	assert.Equal(t, "manhattan", m.Name)

	_, err = distance.ParseMetric("hamming")
	assert.ErrorIs(t, err, distance.ErrUnknownMetric)
}

func TestPairwise(t *testing.T) {
	src, err := matrix.FromRows([][]float64{{0, 0}, {3, 4}, {6, 8}})
	require.NoError(t, err)

	got, err := distance.Pairwise(src, distance.Euclidean, matrix.RetNew)
	require.NoError(t, err)
	want := [][]float64{{0, 5, 10}, {5, 0, 5}, {10, 5, 0}}
	for i, row := range want {
		for j, v := range row {
			d, err := got.Double(coords.Of2(int64(i), int64(j)))
			require.NoError(t, err)
			assert.InDelta(t, v, d, 1e-12, "cell (%d,%d)", i, j)
		}
	}
}

func TestPairwiseLinkTracksSource(t *testing.T) {
	src, err := matrix.FromRows([][]float64{{0, 0}, {3, 4}})
	require.NoError(t, err)
	view, err := distance.Pairwise(src, distance.Manhattan, matrix.RetLink)
	require.NoError(t, err)
	assert.Equal(t, matrix.CalculationStorage, view.StorageKind())

	d, err := view.Double(coords.Of2(0, 1))
	require.NoError(t, err)
	assert.Equal(t, 7.0, d)

	require.NoError(t, src.SetDouble(coords.Of2(1, 1), 10))
	d, err = view.Double(coords.Of2(1, 0))
	require.NoError(t, err)
	assert.Equal(t, 13.0, d)

	err = view.SetDouble(coords.Of2(0, 1), 1)
	assert.ErrorIs(t, err, matrix.ErrUnsupportedOperation)
}

func TestPairwiseErrors(t *testing.T) {
	_, err := distance.Pairwise(nil, distance.Euclidean, matrix.RetNew)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	cube, err := matrix.Zeros(2, 2, 2)
	require.NoError(t, err)
	_, err = distance.Pairwise(cube, distance.Euclidean, matrix.RetNew)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	wide, err := matrix.Zeros(2, 3)
	require.NoError(t, err)
	_, err = distance.Pairwise(wide, distance.Euclidean, matrix.RetOrig)
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)
}

func TestPairwiseAnnotation(t *testing.T) {
	src, err := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	ann := annotation.New(2)
	require.NoError(t, ann.SetAxisLabel(0, 0, "x"))
	require.NoError(t, ann.SetAxisLabel(0, 1, "y"))
	require.NoError(t, ann.SetAxisLabel(1, 0, "ignored"))
	src.SetAnnotation(ann)

	got, err := distance.Pairwise(src, distance.Chebyshev, matrix.RetNew)
	require.NoError(t, err)
	out := got.Annotation()
	require.NotNil(t, out)
	assert.Equal(t, "y", out.AxisLabel(0, 1))
	assert.Equal(t, "y", out.AxisLabel(1, 1))
	assert.Equal(t, "x", out.AxisLabel(1, 0))
}

func TestDistanceKernels(t *testing.T) {
	src, err := matrix.FromRows([][]float64{{1, 2, 3}, {1, 2, 2}})
	require.NoError(t, err)

	for _, name := range []string{"distance.euclidean", "distance.manhattan", "distance.chebyshev", "distance.cosine", "distance.dtw"} {
		k, err := matrix.Kernel(name)
		require.NoError(t, err, name)
		got, err := k([]matrix.Matrix{src}, matrix.RetNew)
		require.NoError(t, err, name)
		assert.Equal(t, coords.Size{2, 2}, got.Size(), name)
	}

	k, err := matrix.Kernel("distance.dtw")
	require.NoError(t, err)
	_, err = k(nil, matrix.RetNew)
	assert.ErrorIs(t, err, matrix.ErrArity)
}

func ExampleWarpingPath() {
	dist, path, _ := distance.WarpingPath([]float64{1, 2, 3}, []float64{1, 2, 2, 3})
	fmt.Println(dist, path)
	// Output: 0 [(0,0) (1,1) (1,2) (2,3)]
}

func BenchmarkDTW(b *testing.B) {
	x := make([]float64, 512)
	y := make([]float64, 600)
	for i := range x {
		x[i] = math.Sin(float64(i) / 16)
	}
	for i := range y {
		y[i] = math.Sin(float64(i) / 19)
	}
	var sink float64
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink, _ = distance.DTW(x, y, distance.WithWindow(64))
	}
	_ = sink
}
