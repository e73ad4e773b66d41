// SPDX-License-Identifier: MIT

package ops

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/katalvlaran/lvmatrix/matrix"
)

// scalarUnary builds the calculation x op s. Writes through a RetLink view
// apply the inverse operator to the source; Times and Divide by zero have no
// inverse and reject writes. A non-finite s keeps decimal sources on the
// float64 path.
func scalarUnary(op Op, s float64) Unary {
	u := Unary{f: func(x float64) float64 { return op.apply(x, s) }}
	finite := !math.IsNaN(s) && !math.IsInf(s, 0)
	var sd decimal.Decimal
	if finite {
		sd = decimal.NewFromFloat(s)
		u.d = func(x decimal.Decimal) (decimal.Decimal, error) { return op.applyDecimal(x, sd) }
	}
	switch op {
	case OpPlus, OpMinus:
		inv := OpMinus
		if op == OpMinus {
			inv = OpPlus
		}
		u.invF = func(x float64) (float64, error) { return inv.apply(x, s), nil }
		if finite {
			u.invD = func(x decimal.Decimal) (decimal.Decimal, error) { return inv.applyDecimal(x, sd) }
		}
		u.zeroFixed = s == 0
	case OpTimes, OpDivide:
		if s != 0 {
			inv := OpDivide
			if op == OpDivide {
				inv = OpTimes
			}
			u.invF = func(x float64) (float64, error) { return inv.apply(x, s), nil }
			if finite {
				u.invD = func(x decimal.Decimal) (decimal.Decimal, error) { return inv.applyDecimal(x, sd) }
			}
		}
		u.zeroFixed = finite && (op == OpTimes || s != 0)
	}

	return u
}

// PlusScalar returns a + s.
func PlusScalar(a matrix.Matrix, s float64, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	return unaryOp("plus-scalar", a, scalarUnary(OpPlus, s), ret, opts)
}

// MinusScalar returns a - s.
func MinusScalar(a matrix.Matrix, s float64, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	return unaryOp("minus-scalar", a, scalarUnary(OpMinus, s), ret, opts)
}

// TimesScalar returns a * s.
func TimesScalar(a matrix.Matrix, s float64, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	return unaryOp("times-scalar", a, scalarUnary(OpTimes, s), ret, opts)
}

// Scale is TimesScalar.
func Scale(a matrix.Matrix, s float64, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	return TimesScalar(a, s, ret, opts...)
}

// DivideScalar returns a / s. Dividing Double cells by zero follows IEEE 754;
// the decimal path returns ErrDivideByZero.
func DivideScalar(a matrix.Matrix, s float64, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	return unaryOp("divide-scalar", a, scalarUnary(OpDivide, s), ret, opts)
}
