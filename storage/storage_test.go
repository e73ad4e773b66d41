// SPDX-License-Identifier: MIT

// Package storage_test covers Dense stride formulas and Sparse association
// semantics, including bounded eviction.
package storage_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/storage"
	"github.com/stretchr/testify/require"
)

// TestDenseStrideBijective checks that every valid coordinate maps to a
// distinct offset for both layouts.
func TestDenseStrideBijective(t *testing.T) {
	for _, layout := range []storage.Layout{storage.RowMajor, storage.ColumnMajor} {
		t.Run(layout.String(), func(t *testing.T) {
			size := coords.Size{3, 4, 2}
			d, err := storage.NewDense[float64](size, layout)
			require.NoError(t, err)
			require.Equal(t, int(size.Product()), d.Len())

			seen := make(map[int]bool)
			for c := range coords.All(size) {
				off, err := d.Offset(c)
				require.NoError(t, err)
				require.False(t, seen[off], "offset %d reused", off)
				seen[off] = true
			}
			require.Len(t, seen, d.Len())
		})
	}
}

// TestDenseLayoutFormula pins the 2-D row- and column-major formulas.
func TestDenseLayoutFormula(t *testing.T) {
	row, err := storage.NewDense[int](coords.Size{2, 3}, storage.RowMajor)
	require.NoError(t, err)
	off, err := row.Offset(coords.Of2(1, 2))
	require.NoError(t, err)
	require.Equal(t, 1*3+2, off)

	col, err := storage.NewDense[int](coords.Size{2, 3}, storage.ColumnMajor)
	require.NoError(t, err)
	off, err = col.Offset(coords.Of2(1, 2))
	require.NoError(t, err)
	require.Equal(t, 1+2*2, off)
}

// TestDenseFailsFast ensures out-of-range and arity errors are never clamped.
func TestDenseFailsFast(t *testing.T) {
	d, err := storage.NewDense[float64](coords.Size{2, 2}, storage.RowMajor)
	require.NoError(t, err)

	_, err = d.Get(coords.Of2(2, 0))
	require.ErrorIs(t, err, storage.ErrOutOfRange)
	require.ErrorIs(t, d.Set(coords.Of2(0, 5), 1), storage.ErrOutOfRange)
	_, err = d.Get(coords.MustNew(0))
	require.ErrorIs(t, err, storage.ErrArity)
	require.True(t, storage.IsOutOfRange(err))

	_, err = storage.NewDense[float64](coords.Size{2, -1}, storage.RowMajor)
	require.ErrorIs(t, err, storage.ErrBadShape)
}

func TestDenseZeroDimension(t *testing.T) {
	d, err := storage.NewDense[float64](coords.Size{0, 4}, storage.RowMajor)
	require.NoError(t, err)
	require.Equal(t, 0, d.Len())
}

func TestDenseCloneIndependent(t *testing.T) {
	d, err := storage.NewDense[string](coords.Size{1, 2}, storage.RowMajor)
	require.NoError(t, err)
	require.NoError(t, d.Set(coords.Of2(0, 1), "a"))

	cp := d.Clone()
	require.NoError(t, cp.Set(coords.Of2(0, 1), "b"))

	v, err := d.Get(coords.Of2(0, 1))
	require.NoError(t, err)
	require.Equal(t, "a", v)
	require.Equal(t, []string{"", "b"}, cp.Raw())
}

func TestWrapDense(t *testing.T) {
	d, err := storage.WrapDense(coords.Size{2, 2}, storage.RowMajor, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	v, err := d.Get(coords.Of2(1, 0))
	require.NoError(t, err)
	require.Equal(t, 3.0, v)

	_, err = storage.WrapDense(coords.Size{2, 2}, storage.RowMajor, []float64{1})
	require.ErrorIs(t, err, storage.ErrBadShape)
}

// TestSparseAbsentReadsDefault checks that missing keys read as zero values.
func TestSparseAbsentReadsDefault(t *testing.T) {
	s, err := storage.NewSparse[float64](coords.Size{10, 10})
	require.NoError(t, err)

	v, err := s.Get(coords.Of2(3, 3))
	require.NoError(t, err)
	require.Equal(t, 0.0, v)
	require.Equal(t, 0, s.Len())

	require.NoError(t, s.Set(coords.Of2(3, 3), 2.5))
	require.Equal(t, 1, s.Len())
	require.True(t, s.Has(coords.Of2(3, 3)))

	_, err = s.Get(coords.Of2(10, 0))
	require.ErrorIs(t, err, storage.ErrOutOfRange)

	require.True(t, s.Delete(coords.Of2(3, 3)))
	require.False(t, s.Delete(coords.Of2(3, 3)))
}

// TestSparseCapacityEviction inserts capacity+1 distinct keys and checks that
// at most capacity stay resident and the evicted key reads as default.
func TestSparseCapacityEviction(t *testing.T) {
	const capacity = 4
	var evicted []coords.Coordinates
	s, err := storage.NewSparse[float64](coords.Size{100, 1},
		storage.WithCapacity(capacity),
		storage.WithEvictHook(func(c coords.Coordinates, _ any) { evicted = append(evicted, c) }),
	)
	require.NoError(t, err)

	for i := int64(0); i <= capacity; i++ {
		require.NoError(t, s.Set(coords.Of2(i, 0), float64(i+1)))
		require.LessOrEqual(t, s.Len(), capacity)
	}

	require.Equal(t, capacity, s.Len())
	require.Equal(t, int64(1), s.Evictions())
	require.Equal(t, []coords.Coordinates{coords.Of2(0, 0)}, evicted) // least recently used

	v, err := s.Get(coords.Of2(0, 0))
	require.NoError(t, err)
	require.Equal(t, 0.0, v)
}

// TestSparseLRUOrder checks that a read refreshes recency.
func TestSparseLRUOrder(t *testing.T) {
	s, err := storage.NewSparse[int](coords.Size{10}, storage.WithCapacity(2))
	require.NoError(t, err)
	a, b, c := coords.MustNew(1), coords.MustNew(2), coords.MustNew(3)

	require.NoError(t, s.Set(a, 1))
	require.NoError(t, s.Set(b, 2))
	_, _ = s.Get(a) // a becomes most recent
	require.NoError(t, s.Set(c, 3))

	require.True(t, s.Has(a))
	require.False(t, s.Has(b))
	require.Equal(t, []coords.Coordinates{a, c}, coords.Collect(s.Keys()))
}

func TestSparseClone(t *testing.T) {
	s, err := storage.NewSparse[string](coords.Size{4, 4}, storage.WithCapacity(3))
	require.NoError(t, err)
	require.NoError(t, s.Set(coords.Of2(0, 0), "x"))

	cp := s.Clone()
	require.NoError(t, cp.Set(coords.Of2(1, 1), "y"))
	require.Equal(t, 1, s.Len())
	require.Equal(t, 2, cp.Len())
	require.Equal(t, 3, cp.Capacity())
}

func TestWithCapacityPanicsOnZero(t *testing.T) {
	require.Panics(t, func() { storage.WithCapacity(0) })
	require.NotPanics(t, func() { storage.WithCapacity(storage.Unbounded) })
}

// TestSparseConcurrentAccess mixes readers and writers on one bounded store.
func TestSparseConcurrentAccess(t *testing.T) {
	s, err := storage.NewSparse[int](coords.Size{1000}, storage.WithCapacity(64))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c := coords.MustNew(int64((w*200 + i) % 1000))
				_ = s.Set(c, i)
				_, _ = s.Get(c)
				_ = s.Len()
			}
		}(w)
	}
	wg.Wait()
	require.LessOrEqual(t, s.Len(), 64)
}

func ExampleSparse() {
	s, _ := storage.NewSparse[float64](coords.Size{3, 3}, storage.WithCapacity(2))
	_ = s.Set(coords.Of2(0, 0), 1)
	_ = s.Set(coords.Of2(1, 1), 2)
	_ = s.Set(coords.Of2(2, 2), 3) // evicts (0,0)
	v, _ := s.Get(coords.Of2(0, 0))
	fmt.Println(s.Len(), v)
	// Output:
	// 2 0
}
