// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/matrix"
)

// MustRows builds a dense Double matrix or fails the test.
func MustRows(t *testing.T, rows [][]float64) matrix.Matrix {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return m
}

// MustVector builds a 1-D dense Double matrix.
func MustVector(t *testing.T, vals ...float64) matrix.Matrix {
	t.Helper()
	m, err := matrix.New(coords.Size{int64(len(vals))})
	require.NoError(t, err)
	for i, v := range vals {
		require.NoError(t, m.SetDouble(coords.MustNew(int64(i)), v))
	}

	return m
}

func vectorValues(t *testing.T, m matrix.Matrix) []float64 {
	t.Helper()
	out := make([]float64, 0, m.Size()[0])
	for c := range m.AllCoordinates() {
		v, err := m.Double(c)
		require.NoError(t, err)
		out = append(out, v)
	}

	return out
}
