// SPDX-License-Identifier: MIT

package ops

import (
	"iter"

	"github.com/shopspring/decimal"

	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/matrix"
)

// Reduction folds a 2-D source along an acting dimension:
//   - matrix.Row collapses the rows, giving a 1×cols result;
//   - matrix.Column collapses the columns, giving a rows×1 result;
//   - matrix.All collapses everything into a 1×1 result.
//
// BigDecimal and BigInteger sources are folded exactly through
// decimal.Decimal. Reductions have no inverse; writes are rejected.
type Reduction struct {
	name string
	src  matrix.Matrix
	dim  matrix.Dimension
	mean bool
}

var (
	_ matrix.DoubleCalculation = (*Reduction)(nil)
	_ matrix.ObjectCalculation = (*Reduction)(nil)
)

func (c *Reduction) Name() string { return c.name + "(" + c.dim.String() + ")" }
func (c *Reduction) Sources() []matrix.Matrix { return []matrix.Matrix{c.src} }
func (c *Reduction) Available() iter.Seq[coords.Coordinates] { return coords.All(c.Size()) }

func (c *Reduction) Size() coords.Size {
	s := c.src.Size()
	switch c.dim {
	case matrix.Row:
		return coords.Size{1, s.Columns()}
	case matrix.Column:
		return coords.Size{s.Rows(), 1}
	default:
		return coords.Size{1, 1}
	}
}

func (c *Reduction) ValueKind() matrix.ValueKind {
	if isBig(c.src.ValueKind()) {
		return matrix.BigDecimal
	}

	return matrix.Double
}

// cells yields the source coordinates folded into the result cell at.
func (c *Reduction) cells(at coords.Coordinates) (iter.Seq[coords.Coordinates], int64) {
	s := c.src.Size()
	switch c.dim {
	case matrix.Row:
		col := at.Column()
		return func(yield func(coords.Coordinates) bool) {
			for i := int64(0); i < s.Rows(); i++ {
				if !yield(coords.Of2(i, col)) {
					return
				}
			}
		}, s.Rows()
	case matrix.Column:
		row := at.Row()
		return func(yield func(coords.Coordinates) bool) {
			for j := int64(0); j < s.Columns(); j++ {
				if !yield(coords.Of2(row, j)) {
					return
				}
			}
		}, s.Columns()
	default:
		// sparse sources only contribute their populated cells
		return c.src.AvailableCoordinates(), s.Product()
	}
}

func (c *Reduction) check(at coords.Coordinates) error {
	return c.Size().Check(at)
}

func (c *Reduction) Double(at coords.Coordinates) (float64, error) {
	if c.ValueKind() == matrix.BigDecimal {
		d, err := c.decimalAt(at)
		if err != nil {
			return 0, err
		}
		return d.InexactFloat64(), nil
	}
	if err := c.check(at); err != nil {
		return 0, err
	}
	seq, n := c.cells(at)
	var sum float64
	for src := range seq {
		v, err := c.src.Double(src)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	if c.mean {
		return sum / float64(n), nil
	}

	return sum, nil
}

func (c *Reduction) Object(at coords.Coordinates) (any, error) {
	if c.ValueKind() == matrix.BigDecimal {
		return c.decimalAt(at)
	}

	return c.Double(at)
}

func (c *Reduction) decimalAt(at coords.Coordinates) (decimal.Decimal, error) {
	if err := c.check(at); err != nil {
		return decimal.Zero, err
	}
	seq, n := c.cells(at)
	sum := decimal.Zero
	for src := range seq {
		v, err := c.src.BigDecimal(src)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(v)
	}
	if !c.mean {
		return sum, nil
	}
	if n == 0 {
		return decimal.Zero, ErrDivideByZero
	}

	return sum.Div(decimal.NewFromInt(n)), nil
}

func (c *Reduction) SetDouble(coords.Coordinates, float64) error {
	return opsErrorf(c.name, matrix.ErrUnsupportedOperation)
}

func (c *Reduction) SetObject(coords.Coordinates, any) error {
	return opsErrorf(c.name, matrix.ErrUnsupportedOperation)
}

func reduce(name string, a matrix.Matrix, dim matrix.Dimension, mean bool, ret matrix.Ret, opts []matrix.Option) (matrix.Matrix, error) {
	if err := matrix.Validate2D(a); err != nil {
		return nil, opsErrorf(name, err)
	}
	if dim < matrix.Row || dim > matrix.All {
		return nil, opsErrorf(name, matrix.ErrUnsupportedOperation)
	}

	return matrix.Calc(&Reduction{name: name, src: a, dim: dim, mean: mean}, ret, opts...)
}

// Sum adds the cells of a along dim. RetOrig fails with
// matrix.ErrShapeMismatch unless the result has a's size.
func Sum(a matrix.Matrix, dim matrix.Dimension, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	return reduce("sum", a, dim, false, ret, opts)
}

// Mean averages the cells of a along dim. Sparse cells that were never set
// count as zero. An empty axis yields NaN on the float64 path and
// ErrDivideByZero on the decimal path.
func Mean(a matrix.Matrix, dim matrix.Dimension, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	return reduce("mean", a, dim, true, ret, opts)
}
