// SPDX-License-Identifier: MIT

package linalg

import (
	"fmt"
	"iter"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/matrix"
)

// Product is the matrix product a·b as a calculation. Reading a cell costs
// one dot product of length a.Columns().
type Product struct {
	a, b matrix.Matrix
}

var _ matrix.DoubleCalculation = (*Product)(nil)

// NewProduct validates the operands of a·b.
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
func NewProduct(a, b matrix.Matrix) (*Product, error) {
	if err := validateProduct(a, b); err != nil {
		return nil, linalgErrorf(opMtimes, err)
	}

	return &Product{a: a, b: b}, nil
}

func validateProduct(a, b matrix.Matrix) error {
	if err := matrix.Validate2D(a); err != nil {
		return err
	}
	if err := matrix.Validate2D(b); err != nil {
		return err
	}
	if a.Size().Columns() != b.Size().Rows() {
		return fmt.Errorf("%s · %s: %w", a.Size(), b.Size(), matrix.ErrDimensionMismatch)
	}

	return nil
}

func (p *Product) Name() string { return "mtimes" }
func (p *Product) Sources() []matrix.Matrix { return []matrix.Matrix{p.a, p.b} }
func (p *Product) ValueKind() matrix.ValueKind { return matrix.Double }

func (p *Product) Size() coords.Size {
	return coords.Size{p.a.Size().Rows(), p.b.Size().Columns()}
}

func (p *Product) Available() iter.Seq[coords.Coordinates] { return coords.All(p.Size()) }

func (p *Product) Double(at coords.Coordinates) (float64, error) {
	var sum float64
	i, j := at.Row(), at.Column()
	for k := int64(0); k < p.a.Size().Columns(); k++ {
		av, err := p.a.Double(coords.Of2(i, k))
		if err != nil {
			return 0, err
		}
		bv, err := p.b.Double(coords.Of2(k, j))
		if err != nil {
			return 0, err
		}
		sum += av * bv
	}

	return sum, nil
}

// SetDouble rejects the write: a product cell has no unique preimage.
func (p *Product) SetDouble(coords.Coordinates, float64) error {
	return linalgErrorf(opMtimes, matrix.ErrUnsupportedOperation)
}

// Mtimes returns the matrix product a·b materialized per ret.
// Implementation:
//   - Stage 1: validate (both 2-D, inner extents equal).
//   - Stage 2: RetNew without storage/kind overrides: compute into a
//     row-major buffer, one Parallel-For step per result row. A sparse a
//     contributes only its populated cells; dense operands use the i→k→j
//     loop skipping zero a[i,k]. Zero skipping is only taken when b is
//     finite, so NaN and ±Inf in b propagate as 0·Inf = NaN.
//   - Stage 3: every other case goes through matrix.Calc with Product.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch,
// matrix.ErrShapeMismatch (RetOrig with a non-square b).
// Complexity: O(r·n·c) dense, O(nnz(a)·c) sparse a.
func Mtimes(a, b matrix.Matrix, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	p, err := NewProduct(a, b)
	if err != nil {
		return nil, err
	}
	o := matrix.ResolveOptions(opts...)
	_, kindSet := o.ValueKind()
	_, storageSet := o.StorageKind()
	if ret != matrix.RetNew || kindSet || storageSet {
		return matrix.Calc(p, ret, opts...)
	}

	rows, inner, cols := a.Size().Rows(), a.Size().Columns(), b.Size().Columns()
	bd, err := rowMajor(b)
	if err != nil {
		return nil, linalgErrorf(opMtimes, err)
	}
	out := make([]float64, rows*cols)
	finite := allFinite(bd)

	if matrix.IsSparse(a) && finite {
		log.WithFields(log.Fields{"a": a.Size(), "b": b.Size(), "nnz": a.ValueCount()}).Debug("linalg: sparse mtimes")
		err = sparseRows(a, bd, out, cols, o)
	} else {
		log.WithFields(log.Fields{"a": a.Size(), "b": b.Size()}).Debug("linalg: dense mtimes")
		var ad []float64
		if ad, err = rowMajor(a); err == nil {
			err = o.Pool().For(0, int(rows)-1, func(i int) error {
				accumulateRow(ad[int64(i)*inner:int64(i+1)*inner], bd, out[int64(i)*cols:int64(i+1)*cols], finite)
				return nil
			})
		}
	}
	if err != nil {
		return nil, linalgErrorf(opMtimes, err)
	}

	return fromRowMajor(rows, cols, out, o)
}

// accumulateRow adds aRow·B into dst, where B is row-major with len(dst)
// columns. Zero entries of aRow are skipped when skipZeros is set.
func accumulateRow(aRow, b, dst []float64, skipZeros bool) {
	cols := len(dst)
	for k, av := range aRow {
		if av == 0 && skipZeros {
			continue
		}
		bRow := b[k*cols : (k+1)*cols]
		for j, bv := range bRow {
			dst[j] += av * bv
		}
	}
}

func allFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}

type entry struct {
	k int64
	v float64
}

// sparseRows multiplies the populated cells of a into out, grouping them by
// row so each Parallel-For step owns one output row.
func sparseRows(a matrix.Matrix, b, out []float64, cols int64, o matrix.Options) error {
	byRow := make(map[int64][]entry)
	for at := range a.AvailableCoordinates() {
		v, err := a.Double(at)
		if err != nil {
			return err
		}
		if v != 0 {
			byRow[at.Row()] = append(byRow[at.Row()], entry{k: at.Column(), v: v})
		}
	}
	rows := make([]int64, 0, len(byRow))
	for i := range byRow {
		rows = append(rows, i)
	}

	return o.Pool().For(0, len(rows)-1, func(n int) error {
		i := rows[n]
		dst := out[i*cols : (i+1)*cols]
		for _, e := range byRow[i] {
			bRow := b[e.k*cols : (e.k+1)*cols]
			for j, bv := range bRow {
				dst[j] += e.v * bv
			}
		}
		return nil
	})
}
