// SPDX-License-Identifier: MIT

package ops

import (
	"iter"

	"github.com/katalvlaran/lvmatrix/annotation"
	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/matrix"
)

// Transposition swaps the two axes of a 2-D source. It is invertible, so
// writes through a RetLink view land on the mirrored source cell.
type Transposition struct {
	src matrix.Matrix
}

var (
	_ matrix.DoubleCalculation = (*Transposition)(nil)
	_ matrix.ObjectCalculation = (*Transposition)(nil)
)

func (c *Transposition) Name() string { return "transpose" }
func (c *Transposition) Sources() []matrix.Matrix { return []matrix.Matrix{c.src} }
func (c *Transposition) Size() coords.Size { return c.src.Size().Transpose() }
func (c *Transposition) ValueKind() matrix.ValueKind { return c.src.ValueKind() }
func (c *Transposition) PreservesSparsity() bool { return true }

func (c *Transposition) Available() iter.Seq[coords.Coordinates] {
	return func(yield func(coords.Coordinates) bool) {
		for at := range c.src.AvailableCoordinates() {
			if !yield(at.Transpose()) {
				return
			}
		}
	}
}

// ResultAnnotation swaps the row and column axis labels.
func (c *Transposition) ResultAnnotation() *annotation.Annotation {
	return c.src.Annotation().Transpose()
}

func (c *Transposition) Double(at coords.Coordinates) (float64, error) {
	return c.src.Double(at.Transpose())
}

func (c *Transposition) SetDouble(at coords.Coordinates, v float64) error {
	return c.src.SetDouble(at.Transpose(), v)
}

func (c *Transposition) Object(at coords.Coordinates) (any, error) {
	return c.src.Object(at.Transpose())
}

func (c *Transposition) SetObject(at coords.Coordinates, v any) error {
	return c.src.SetObject(at.Transpose(), v)
}

// Transpose returns the transpose of the 2-D matrix a. RetOrig requires a
// square matrix.
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch,
// matrix.ErrShapeMismatch (RetOrig on a non-square matrix).
func Transpose(a matrix.Matrix, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	if err := matrix.Validate2D(a); err != nil {
		return nil, opsErrorf("transpose", err)
	}

	return matrix.Calc(&Transposition{src: a}, ret, opts...)
}
