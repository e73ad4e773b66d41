// SPDX-License-Identifier: MIT

package ops

import (
	"iter"
	"math"

	"github.com/shopspring/decimal"

	"github.com/katalvlaran/lvmatrix/annotation"
	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/matrix"
)

// Unary is an elementwise calculation over one source. Double sources are
// evaluated as float64; BigDecimal and BigInteger sources through
// decimal.Decimal when the operation has an exact decimal form.
type Unary struct {
	name string
	src  matrix.Matrix
	kind matrix.ValueKind

	f    func(float64) float64
	d    func(decimal.Decimal) (decimal.Decimal, error)
	invF func(float64) (float64, error)
	invD func(decimal.Decimal) (decimal.Decimal, error)

	zeroFixed bool // f(0) == 0
}

// Compile-time checks.
var (
	_ matrix.DoubleCalculation    = (*Unary)(nil)
	_ matrix.ObjectCalculation    = (*Unary)(nil)
	_ matrix.AnnotationPreserving = (*Unary)(nil)
)

func newUnary(name string, src matrix.Matrix, u Unary) (*Unary, error) {
	if err := matrix.ValidateNotNil(src); err != nil {
		return nil, opsErrorf(name, err)
	}
	u.name, u.src, u.kind = name, src, matrix.Double
	if isBig(src.ValueKind()) && u.d != nil {
		u.kind = matrix.BigDecimal
	}

	return &u, nil
}

func (c *Unary) Name() string { return c.name }
func (c *Unary) Sources() []matrix.Matrix { return []matrix.Matrix{c.src} }
func (c *Unary) Size() coords.Size { return c.src.Size() }
func (c *Unary) ValueKind() matrix.ValueKind { return c.kind }
func (c *Unary) Pointwise() bool { return true }
func (c *Unary) PreservesSparsity() bool { return c.zeroFixed }

func (c *Unary) Available() iter.Seq[coords.Coordinates] {
	if c.zeroFixed {
		return c.src.AvailableCoordinates()
	}

	return coords.All(c.src.Size())
}

func (c *Unary) ResultAnnotation() *annotation.Annotation { return c.src.Annotation().Clone() }

func (c *Unary) Double(at coords.Coordinates) (float64, error) {
	if c.kind == matrix.BigDecimal {
		d, err := c.decimalAt(at)
		if err != nil {
			return 0, err
		}
		return d.InexactFloat64(), nil
	}
	x, err := c.src.Double(at)
	if err != nil {
		return 0, err
	}

	return c.f(x), nil
}

func (c *Unary) Object(at coords.Coordinates) (any, error) {
	if c.kind == matrix.BigDecimal {
		return c.decimalAt(at)
	}

	return c.Double(at)
}

func (c *Unary) decimalAt(at coords.Coordinates) (decimal.Decimal, error) {
	x, err := c.src.BigDecimal(at)
	if err != nil {
		return decimal.Zero, err
	}

	return c.d(x)
}

// SetDouble inverts the write onto the source, or rejects it when the
// operation has no inverse.
func (c *Unary) SetDouble(at coords.Coordinates, v float64) error {
	if c.kind == matrix.BigDecimal {
		return c.SetObject(at, v)
	}
	if c.invF == nil {
		return opsErrorf(c.name, matrix.ErrUnsupportedOperation)
	}
	x, err := c.invF(v)
	if err != nil {
		return opsErrorf(c.name, err)
	}

	return c.src.SetDouble(at, x)
}

func (c *Unary) SetObject(at coords.Coordinates, v any) error {
	if c.kind != matrix.BigDecimal {
		f, err := matrix.ToFloat64(v)
		if err != nil {
			return err
		}
		return c.SetDouble(at, f)
	}
	if c.invD == nil {
		return opsErrorf(c.name, matrix.ErrUnsupportedOperation)
	}
	d, err := matrix.ToDecimal(v)
	if err != nil {
		return err
	}
	x, err := c.invD(d)
	if err != nil {
		return opsErrorf(c.name, err)
	}

	return c.src.SetBigDecimal(at, x)
}

func unaryOp(name string, a matrix.Matrix, u Unary, ret matrix.Ret, opts []matrix.Option) (matrix.Matrix, error) {
	c, err := newUnary(name, a, u)
	if err != nil {
		return nil, err
	}

	return matrix.Calc(c, ret, opts...)
}

// Negate returns -a. Writes through a RetLink view are negated onto a.
func Negate(a matrix.Matrix, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	neg := func(x float64) float64 { return -x }
	negD := func(x decimal.Decimal) (decimal.Decimal, error) { return x.Neg(), nil }

	return unaryOp("negate", a, Unary{
		f: neg, d: negD,
		invF:      func(x float64) (float64, error) { return -x, nil },
		invD:      negD,
		zeroFixed: true,
	}, ret, opts)
}

// Abs returns |a|. RetLink views reject writes.
func Abs(a matrix.Matrix, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	return unaryOp("abs", a, Unary{
		f:         math.Abs,
		d:         func(x decimal.Decimal) (decimal.Decimal, error) { return x.Abs(), nil },
		zeroFixed: true,
	}, ret, opts)
}

// Map applies fn to every cell as float64. The result is Double and keeps
// the source's sparsity when fn(0) == 0. RetLink views reject writes.
func Map(a matrix.Matrix, name string, fn func(float64) float64, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	if fn == nil {
		return nil, opsErrorf("map", matrix.ErrUnsupportedOperation)
	}
	if name == "" {
		name = "map"
	}

	return unaryOp(name, a, Unary{f: fn, zeroFixed: fn(0) == 0}, ret, opts)
}

// Conversion re-types every cell of its source to a target value kind.
type Conversion struct {
	src  matrix.Matrix
	kind matrix.ValueKind
}

var _ matrix.ObjectCalculation = (*Conversion)(nil)

func (c *Conversion) Name() string { return "convert" }
func (c *Conversion) Sources() []matrix.Matrix { return []matrix.Matrix{c.src} }
func (c *Conversion) Size() coords.Size { return c.src.Size() }
func (c *Conversion) ValueKind() matrix.ValueKind { return c.kind }
func (c *Conversion) Pointwise() bool { return true }

// PreservesSparsity holds between kinds whose zero values convert to each
// other.
func (c *Conversion) PreservesSparsity() bool {
	return c.kind != matrix.String && c.src.ValueKind() != matrix.String
}

func (c *Conversion) Available() iter.Seq[coords.Coordinates] {
	if c.PreservesSparsity() {
		return c.src.AvailableCoordinates()
	}

	return coords.All(c.src.Size())
}

func (c *Conversion) ResultAnnotation() *annotation.Annotation { return c.src.Annotation().Clone() }

func (c *Conversion) Object(at coords.Coordinates) (any, error) {
	v, err := c.src.Object(at)
	if err != nil {
		return nil, err
	}

	return matrix.ConvertValue(v, c.kind)
}

// SetObject writes v to the source, which converts it to its own kind.
func (c *Conversion) SetObject(at coords.Coordinates, v any) error {
	return c.src.SetObject(at, v)
}

// Convert returns a with every cell converted to kind.
// Errors: matrix.ErrValueConversion for cells that cannot be represented.
func Convert(a matrix.Matrix, kind matrix.ValueKind, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, opsErrorf("convert", err)
	}
	if !kind.Valid() {
		return nil, opsErrorf("convert", matrix.ErrUnknownValueKind)
	}

	return matrix.Calc(&Conversion{src: a, kind: kind}, ret, opts...)
}

// Copy returns a copy of a in its own value kind. Under RetLink it is a
// writable alias of a.
func Copy(a matrix.Matrix, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, opsErrorf("copy", err)
	}

	return Convert(a, a.ValueKind(), ret, opts...)
}
