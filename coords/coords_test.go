// SPDX-License-Identifier: MIT

// Package coords_test covers Coordinates construction, Size arithmetic and
// row-major iteration.
package coords_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/stretchr/testify/require"
)

// TestNewRejectsInvalid checks arity and sign validation.
func TestNewRejectsInvalid(t *testing.T) {
	_, err := coords.New()
	require.ErrorIs(t, err, coords.ErrArity)

	_, err = coords.New(1, -1)
	require.ErrorIs(t, err, coords.ErrNegativeIndex)

	_, err = coords.New(make([]int64, coords.MaxDimensions+1)...)
	require.ErrorIs(t, err, coords.ErrArity)
}

// TestCoordinatesAreMapKeys verifies equality/hash consistency.
func TestCoordinatesAreMapKeys(t *testing.T) {
	a := coords.MustNew(1, 2)
	b := coords.Of2(1, 2)
	c := coords.MustNew(1, 2, 0)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c)) // arity matters

	m := map[coords.Coordinates]int{a: 7}
	require.Equal(t, 7, m[b])
	_, ok := m[c]
	require.False(t, ok)
}

func TestCoordinatesAccessors(t *testing.T) {
	c := coords.MustNew(3, 4, 5)
	require.Equal(t, 3, c.Dims())
	require.Equal(t, int64(3), c.Row())
	require.Equal(t, int64(4), c.Column())
	require.Equal(t, int64(5), c.At(2))
	require.Equal(t, int64(0), c.At(7))
	require.Equal(t, []int64{3, 4, 5}, c.Slice())
	require.Equal(t, "(3,4,5)", c.String())
	require.Equal(t, coords.MustNew(4, 3, 5), c.Transpose())
	require.Equal(t, coords.MustNew(3, 9, 5), c.With(1, 9))
	require.True(t, coords.Of2(0, 9).Less(coords.Of2(1, 0)))
	require.False(t, coords.Of2(1, 0).Less(coords.Of2(1, 0)))
}

// TestAllExhaustive checks count(All(size)) == product(size), including
// zero-length dimensions.
func TestAllExhaustive(t *testing.T) {
	cases := []coords.Size{
		{1}, {5}, {3, 3}, {2, 3, 4}, {1, 1, 1, 1}, {4, 0}, {0}, {2, 0, 3},
	}
	for _, size := range cases {
		t.Run(size.String(), func(t *testing.T) {
			got := coords.Count(coords.All(size))
			require.Equal(t, size.Product(), got)
			for c := range coords.All(size) {
				require.True(t, size.Contains(c), "coordinate %v outside %v", c, size)
			}
		})
	}
}

// TestAllRowMajorOrder checks last-dimension-fastest order and restartability.
func TestAllRowMajorOrder(t *testing.T) {
	seq := coords.All(coords.Size{2, 2})
	want := []coords.Coordinates{
		coords.Of2(0, 0), coords.Of2(0, 1), coords.Of2(1, 0), coords.Of2(1, 1),
	}
	require.Equal(t, want, coords.Collect(seq))
	require.Equal(t, want, coords.Collect(seq)) // second traversal is independent
}

// TestIndexRoundTrip checks FromIndex/ToIndex are inverse bijections.
func TestIndexRoundTrip(t *testing.T) {
	size := coords.Size{3, 4, 2}
	var linear int64
	for c := range coords.All(size) {
		got, err := coords.ToIndex(size, c)
		require.NoError(t, err)
		require.Equal(t, linear, got)

		back, err := coords.FromIndex(size, linear)
		require.NoError(t, err)
		require.Equal(t, c, back)
		linear++
	}

	_, err := coords.FromIndex(size, size.Product())
	require.ErrorIs(t, err, coords.ErrOutOfRange)
	_, err = coords.ToIndex(size, coords.Of2(0, 0))
	require.ErrorIs(t, err, coords.ErrArity)
}

func TestSizeHelpers(t *testing.T) {
	s, err := coords.NewSize(2, 5)
	require.NoError(t, err)
	require.Equal(t, int64(10), s.Product())
	require.Equal(t, coords.Size{5, 2}, s.Transpose())
	require.True(t, s.Equal(coords.Size{2, 5}))
	require.False(t, s.Equal(coords.Size{2, 5, 1}))
	require.Equal(t, "2x5", s.String())
	require.ErrorIs(t, s.Check(coords.Of2(2, 0)), coords.ErrOutOfRange)

	_, err = coords.NewSize(2, -1)
	require.ErrorIs(t, err, coords.ErrBadSize)
}

func TestCursorReset(t *testing.T) {
	cur := coords.NewCursor(coords.Size{1, 2})
	require.True(t, cur.HasNext())
	require.Equal(t, coords.Of2(0, 0), cur.Next())
	require.Equal(t, coords.Of2(0, 1), cur.Next())
	require.False(t, cur.HasNext())
	cur.Reset()
	require.True(t, cur.HasNext())
}

func ExampleAll() {
	for c := range coords.All(coords.Size{2, 3}) {
		fmt.Print(c, " ")
	}
	fmt.Println()
	// Output:
	// (0,0) (0,1) (0,2) (1,0) (1,1) (1,2)
}
