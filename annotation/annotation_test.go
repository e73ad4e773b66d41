// SPDX-License-Identifier: MIT

package annotation_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmatrix/annotation"
)

func TestLabels(t *testing.T) {
	a := annotation.New(2)
	require.Equal(t, 2, a.Dims())
	require.Nil(t, a.Label())

	require.NoError(t, a.SetLabel("prices"))
	require.Equal(t, "prices", a.Label())

	require.NoError(t, a.SetAxisLabel(1, 0, "open"))
	require.NoError(t, a.SetAxisLabel(1, 3, "close"))
	require.Equal(t, "close", a.AxisLabel(1, 3))
	require.Nil(t, a.AxisLabel(1, 2))
	require.Nil(t, a.AxisLabel(0, 3))
	require.Equal(t, []int64{0, 3}, a.AxisPositions(1))

	pos, ok := a.PositionOf(1, "close")
	require.True(t, ok)
	require.Equal(t, int64(3), pos)
	_, ok = a.PositionOf(1, "volume")
	require.False(t, ok)

	require.NoError(t, a.SetAxisLabel(1, 0, nil))
	require.Equal(t, []int64{3}, a.AxisPositions(1))
}

func TestAxisErrors(t *testing.T) {
	a := annotation.New(2)
	require.ErrorIs(t, a.SetAxisLabel(2, 0, "x"), annotation.ErrAxis)
	require.ErrorIs(t, a.SetAxisLabel(-1, 0, "x"), annotation.ErrAxis)
	require.ErrorIs(t, a.SetAxisLabel(0, -4, "x"), annotation.ErrPosition)
	require.Nil(t, a.AxisLabel(5, 0))
	require.Nil(t, a.AxisPositions(5))

	require.Panics(t, func() { annotation.New(0) })
}

// TestCloneIsDeep checks that edits to a clone never reach the original.
func TestCloneIsDeep(t *testing.T) {
	a := annotation.New(2)
	require.NoError(t, a.SetLabel("m"))
	require.NoError(t, a.SetAxisLabel(0, 1, "row1"))

	cp := a.Clone()
	require.True(t, a.Equal(cp))

	require.NoError(t, cp.SetLabel("other"))
	require.NoError(t, cp.SetAxisLabel(0, 1, "changed"))
	require.NoError(t, cp.SetAxisLabel(1, 0, "col0"))

	require.Equal(t, "m", a.Label())
	require.Equal(t, "row1", a.AxisLabel(0, 1))
	require.Nil(t, a.AxisLabel(1, 0))
	require.False(t, a.Equal(cp))
}

func TestTransposeSwapsAxes(t *testing.T) {
	a := annotation.New(2)
	require.NoError(t, a.SetAxisLabel(0, 0, "r"))
	require.NoError(t, a.SetAxisLabel(1, 2, "c"))

	tr := a.Transpose()
	require.Equal(t, "r", tr.AxisLabel(1, 0))
	require.Equal(t, "c", tr.AxisLabel(0, 2))
	require.True(t, a.Equal(tr.Transpose()))
}

func TestNilAnnotation(t *testing.T) {
	var a *annotation.Annotation
	require.Equal(t, 0, a.Dims())
	require.Nil(t, a.Label())
	require.Nil(t, a.AxisLabel(0, 0))
	require.Nil(t, a.Clone())
	require.True(t, a.Equal(nil))
	require.False(t, a.Equal(annotation.New(1)))
	require.ErrorIs(t, a.SetLabel("x"), annotation.ErrNilAnnotation)
	require.ErrorIs(t, a.SetAxisLabel(0, 0, "x"), annotation.ErrNilAnnotation)
}

func TestConcurrentReadWrite(t *testing.T) {
	a := annotation.New(1)
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := int64(0); i < 100; i++ {
				_ = a.SetAxisLabel(0, i, fmt.Sprintf("w%d", w))
				_ = a.AxisLabel(0, i)
				_ = a.Clone()
			}
		}(w)
	}
	wg.Wait()
	require.Len(t, a.AxisPositions(0), 100)
}

func ExampleAnnotation() {
	a := annotation.New(2)
	_ = a.SetLabel("scores")
	_ = a.SetAxisLabel(1, 0, "math")
	_ = a.SetAxisLabel(1, 1, "art")
	fmt.Println(a.Label(), a.AxisLabel(1, 1), a.AxisPositions(1))
	// Output:
	// scores art [0 1]
}
