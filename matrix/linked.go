// SPDX-License-Identifier: MIT

package matrix

import (
	"iter"
	"math/big"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvmatrix/coords"
)

// linked is the RetLink view: a Matrix whose cells are computed from the
// calculation on every read. Nothing is cached.
type linked struct {
	base
	calc Calculation
	opts Options
}

func newLinked(c Calculation, o Options) *linked {
	m := &linked{calc: c, opts: o}
	lo := o
	lo.ann = resultAnnotation(c)
	m.init(c.Size(), c.ValueKind(), lo)

	return m
}

// Compile-time checks.
var (
	_ Matrix = (*linked)(nil)
	_ Linked = (*linked)(nil)
)

// Calculation returns the wrapped calculation.
func (m *linked) Calculation() Calculation { return m.calc }

func (m *linked) StorageKind() StorageKind { return CalculationStorage }

// ValueCount counts the coordinates the calculation defines.
func (m *linked) ValueCount() int64 { return coords.Count(m.calc.Available()) }

func (m *linked) AvailableCoordinates() iter.Seq[coords.Coordinates] {
	return m.calc.Available()
}

func (m *linked) Double(c coords.Coordinates) (float64, error) {
	if err := m.check(opDouble, c); err != nil {
		return 0, err
	}
	v, err := CalcDouble(m.calc, c)
	if err != nil {
		return 0, matrixErrorf(opDouble, err)
	}

	return v, nil
}

func (m *linked) Object(c coords.Coordinates) (any, error) {
	if err := m.check(opObject, c); err != nil {
		return nil, err
	}
	v, err := CalcObject(m.calc, c)
	if err != nil {
		return nil, matrixErrorf(opObject, err)
	}

	return v, nil
}

func (m *linked) BigDecimal(c coords.Coordinates) (decimal.Decimal, error) {
	v, err := m.Object(c)
	if err != nil {
		return decimal.Zero, err
	}

	return ToDecimal(v)
}

func (m *linked) BigInteger(c coords.Coordinates) (*big.Int, error) {
	v, err := m.Object(c)
	if err != nil {
		return nil, err
	}

	return ToBigInt(v)
}

func (m *linked) Text(c coords.Coordinates) (string, error) {
	v, err := m.Object(c)
	if err != nil {
		return "", err
	}

	return ToText(v), nil
}

// SetDouble forwards the write to the calculation, which inverts it onto a
// source or returns ErrUnsupportedOperation.
func (m *linked) SetDouble(c coords.Coordinates, v float64) error {
	if err := m.check(opSetDouble, c); err != nil {
		return err
	}
	var err error
	switch x := m.calc.(type) {
	case DoubleCalculation:
		err = x.SetDouble(c, v)
	case ObjectCalculation:
		err = x.SetObject(c, v)
	default:
		err = unevaluable(m.calc)
	}
	if err != nil {
		return matrixErrorf(opSetDouble, err)
	}
	m.publish(CellChanged, c)

	return nil
}

func (m *linked) setAny(tag string, c coords.Coordinates, v any) error {
	if err := m.check(tag, c); err != nil {
		return err
	}
	var err error
	switch x := m.calc.(type) {
	case ObjectCalculation:
		err = x.SetObject(c, v)
	case DoubleCalculation:
		var f float64
		if f, err = ToFloat64(v); err == nil {
			err = x.SetDouble(c, f)
		}
	default:
		err = unevaluable(m.calc)
	}
	if err != nil {
		return matrixErrorf(tag, err)
	}
	m.publish(CellChanged, c)

	return nil
}

func (m *linked) SetObject(c coords.Coordinates, v any) error {
	return m.setAny(opSetObject, c, v)
}

func (m *linked) SetBigDecimal(c coords.Coordinates, v decimal.Decimal) error {
	return m.setAny(opSetBigDecimal, c, v)
}

func (m *linked) SetBigInteger(c coords.Coordinates, v *big.Int) error {
	return m.setAny(opSetBigInteger, c, v)
}

func (m *linked) SetText(c coords.Coordinates, v string) error {
	return m.setAny(opSetText, c, v)
}

// Clone materializes the view into fresh storage. Clone has no error
// result: when evaluation fails the failure is logged at Warn and Clone
// returns nil. Use Materialize to get the error.
func (m *linked) Clone() Matrix {
	out, err := m.materialize()
	if err != nil {
		log.WithFields(log.Fields{"calc": m.calc.Name(), "id": m.ID()}).WithError(err).Warn("matrix: clone of view failed")
		return nil
	}

	return out
}

func (m *linked) materialize() (Matrix, error) {
	out, err := calcNew(m.calc, m.opts)
	if err != nil {
		return nil, matrixErrorf("Materialize", err)
	}
	out.SetAnnotation(m.Annotation().Clone())

	return out, nil
}

// Materialize returns an independent copy of m in fresh storage. It is
// Clone with the evaluation error of a RetLink view surfaced.
// Errors: ErrNilMatrix, evaluation errors of the view's calculation.
func Materialize(m Matrix) (Matrix, error) {
	if m == nil {
		return nil, matrixErrorf("Materialize", ErrNilMatrix)
	}
	if l, ok := m.(*linked); ok {
		return l.materialize()
	}

	return m.Clone(), nil
}
