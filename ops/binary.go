// SPDX-License-Identifier: MIT

package ops

import (
	"iter"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/matrix"
)

// Op is an elementwise arithmetic operator.
type Op int

const (
	OpPlus Op = iota
	OpMinus
	OpTimes
	OpDivide
)

// String returns the kernel name of op.
func (op Op) String() string {
	switch op {
	case OpPlus:
		return "plus"
	case OpMinus:
		return "minus"
	case OpTimes:
		return "times"
	default:
		return "divide"
	}
}

func (op Op) apply(x, y float64) float64 {
	switch op {
	case OpPlus:
		return x + y
	case OpMinus:
		return x - y
	case OpTimes:
		return x * y
	default:
		return x / y
	}
}

func (op Op) applyDecimal(x, y decimal.Decimal) (decimal.Decimal, error) {
	switch op {
	case OpPlus:
		return x.Add(y), nil
	case OpMinus:
		return x.Sub(y), nil
	case OpTimes:
		return x.Mul(y), nil
	default:
		if y.IsZero() {
			return decimal.Zero, ErrDivideByZero
		}
		return x.Div(y), nil
	}
}

// fastChunk is the number of cells one Parallel-For step handles in the raw
// array path.
const fastChunk = 4096

// Binary is the elementwise calculation a op b.
type Binary struct {
	op      Op
	a, b    matrix.Matrix
	kind    matrix.ValueKind
	decimal bool // evaluate through decimal.Decimal
}

// Compile-time checks.
var (
	_ matrix.DoubleCalculation = (*Binary)(nil)
	_ matrix.ObjectCalculation = (*Binary)(nil)
)

// NewBinary builds a op b. Errors: matrix.ErrNilMatrix, matrix.ErrShapeMismatch.
//
// Result kind: Double when both operands are Double; BigDecimal when either
// is BigDecimal or BigInteger; Double otherwise. Operands of any kind other
// than Double are combined through decimal.Decimal.
func NewBinary(op Op, a, b matrix.Matrix) (*Binary, error) {
	if err := matrix.ValidateSameSize(a, b); err != nil {
		return nil, opsErrorf(op.String(), err)
	}
	ka, kb := a.ValueKind(), b.ValueKind()
	c := &Binary{op: op, a: a, b: b, kind: matrix.Double}
	c.decimal = ka != matrix.Double || kb != matrix.Double
	if isBig(ka) || isBig(kb) {
		c.kind = matrix.BigDecimal
	}

	return c, nil
}

func isBig(k matrix.ValueKind) bool {
	return k == matrix.BigDecimal || k == matrix.BigInteger
}

func (c *Binary) Name() string { return c.op.String() }
func (c *Binary) Sources() []matrix.Matrix { return []matrix.Matrix{c.a, c.b} }
func (c *Binary) Size() coords.Size { return c.a.Size() }
func (c *Binary) ValueKind() matrix.ValueKind { return c.kind }
func (c *Binary) Pointwise() bool { return true }

// Available is the union of populated keys for sparse Plus/Minus, the
// intersection (or the sparse side) for Times, and every coordinate otherwise.
func (c *Binary) Available() iter.Seq[coords.Coordinates] {
	sa, sb := matrix.IsSparse(c.a), matrix.IsSparse(c.b)
	switch {
	case (c.op == OpPlus || c.op == OpMinus) && sa && sb:
		return union(c.a.AvailableCoordinates(), c.b.AvailableCoordinates())
	case c.op == OpTimes && sa && sb:
		return intersection(c.a.AvailableCoordinates(), c.b.AvailableCoordinates())
	case c.op == OpTimes && sa:
		return c.a.AvailableCoordinates()
	case c.op == OpTimes && sb:
		return c.b.AvailableCoordinates()
	default:
		return coords.All(c.a.Size())
	}
}

// PreservesSparsity reports whether Available is narrower than the full
// coordinate space.
func (c *Binary) PreservesSparsity() bool {
	sa, sb := matrix.IsSparse(c.a), matrix.IsSparse(c.b)
	switch c.op {
	case OpPlus, OpMinus:
		return sa && sb
	case OpTimes:
		return sa || sb
	default:
		return false
	}
}

func (c *Binary) Double(at coords.Coordinates) (float64, error) {
	if c.decimal {
		d, err := c.decimalAt(at)
		if err != nil {
			return 0, err
		}
		return d.InexactFloat64(), nil
	}
	x, err := c.a.Double(at)
	if err != nil {
		return 0, err
	}
	y, err := c.b.Double(at)
	if err != nil {
		return 0, err
	}

	return c.op.apply(x, y), nil
}

func (c *Binary) Object(at coords.Coordinates) (any, error) {
	if c.kind == matrix.Double {
		return c.Double(at)
	}

	return c.decimalAt(at)
}

func (c *Binary) decimalAt(at coords.Coordinates) (decimal.Decimal, error) {
	x, err := c.a.BigDecimal(at)
	if err != nil {
		return decimal.Zero, err
	}
	y, err := c.b.BigDecimal(at)
	if err != nil {
		return decimal.Zero, err
	}

	return c.op.applyDecimal(x, y)
}

// SetDouble rejects the write: a binary result has no unique inverse.
func (c *Binary) SetDouble(coords.Coordinates, float64) error {
	return opsErrorf(c.op.String(), matrix.ErrUnsupportedOperation)
}

// SetObject rejects the write.
func (c *Binary) SetObject(coords.Coordinates, any) error {
	return opsErrorf(c.op.String(), matrix.ErrUnsupportedOperation)
}

// Plus returns a + b materialized per ret.
func Plus(a, b matrix.Matrix, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	return binaryOp(OpPlus, a, b, ret, opts...)
}

// Minus returns a - b materialized per ret.
func Minus(a, b matrix.Matrix, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	return binaryOp(OpMinus, a, b, ret, opts...)
}

// Times returns the elementwise product a .* b materialized per ret.
func Times(a, b matrix.Matrix, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	return binaryOp(OpTimes, a, b, ret, opts...)
}

// Divide returns the elementwise quotient a ./ b materialized per ret.
func Divide(a, b matrix.Matrix, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	return binaryOp(OpDivide, a, b, ret, opts...)
}

// binaryOp dispatches to the cheapest applicable path.
// Implementation:
//   - Stage 1: build the calculation (validates nil operands and sizes).
//   - Stage 2: RetNew only: try the raw array loop, then the sparse merge.
//   - Stage 3: fall back to matrix.Calc with the generic calculation.
func binaryOp(op Op, a, b matrix.Matrix, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	c, err := NewBinary(op, a, b)
	if err != nil {
		return nil, err
	}
	o := matrix.ResolveOptions(opts...)
	_, kindSet := o.ValueKind()
	_, storageSet := o.StorageKind()
	if ret == matrix.RetNew && !kindSet && !storageSet {
		if res, ok, err := denseFast(op, a, b, o); ok {
			return res, err
		}
		if (op == OpPlus || op == OpMinus) && !c.decimal && matrix.IsSparse(a) && matrix.IsSparse(b) {
			log.WithField("op", op).Debug("ops: sparse merge")
			return sparseMerge(op, a, b, o, opts)
		}
	}
	log.WithFields(log.Fields{"op": op, "ret": ret}).Debug("ops: generic calculation")

	return matrix.Calc(c, ret, opts...)
}

// denseFast runs the raw array loop when both operands expose float64
// buffers with the same layout. ok is false when the path does not apply.
func denseFast(op Op, a, b matrix.Matrix, o matrix.Options) (res matrix.Matrix, ok bool, err error) {
	ad, al, okA := matrix.AsDoubleArray(a)
	bd, bl, okB := matrix.AsDoubleArray(b)
	if !okA || !okB || al != bl || len(ad) != len(bd) {
		return nil, false, nil
	}
	log.WithFields(log.Fields{"op": op, "cells": len(ad)}).Debug("ops: raw array loop")

	res, err = matrix.New(a.Size(), matrix.WithLayout(al))
	if err != nil {
		return nil, true, opsErrorf(op.String(), err)
	}
	out, _, _ := matrix.AsDoubleArray(res)
	if err = rawLoop(o, len(out), func(i int) { out[i] = op.apply(ad[i], bd[i]) }); err != nil {
		return nil, true, opsErrorf(op.String(), err)
	}
	announce(res, o)

	return res, true, nil
}

// rawLoop runs body(i) for i in [0, n) in fastChunk-sized Parallel-For steps.
func rawLoop(o matrix.Options, n int, body func(i int)) error {
	chunks := (n + fastChunk - 1) / fastChunk

	return o.Pool().For(0, chunks-1, func(k int) error {
		hi := min((k+1)*fastChunk, n)
		for i := k * fastChunk; i < hi; i++ {
			body(i)
		}
		return nil
	})
}

// announce attaches the configured sink to a freshly filled result and
// publishes Materialized.
func announce(m matrix.Matrix, o matrix.Options) {
	if a := o.Annotation(); a != nil {
		m.SetAnnotation(a)
	}
	if s := o.Sink(); s != nil {
		matrix.SetEventSink(m, s)
		matrix.Notify(m, matrix.Materialized)
	}
}

// sparseMerge copies every entry of a into a sparse result, then folds every
// entry of b into it, inserting op(0, b) where a had no entry. The populated
// key set of the result is the union of both operands' keys.
func sparseMerge(op Op, a, b matrix.Matrix, o matrix.Options, opts []matrix.Option) (matrix.Matrix, error) {
	res, err := matrix.New(a.Size(), append(opts,
		matrix.WithStorage(matrix.SparseStorage), matrix.WithEventSink(nil), matrix.WithAnnotation(nil))...)
	if err != nil {
		return nil, opsErrorf(op.String(), err)
	}
	for at := range a.AvailableCoordinates() {
		v, err := a.Double(at)
		if err != nil {
			return nil, opsErrorf(op.String(), err)
		}
		if err = res.SetDouble(at, v); err != nil {
			return nil, opsErrorf(op.String(), err)
		}
	}
	for at := range b.AvailableCoordinates() {
		y, err := b.Double(at)
		if err != nil {
			return nil, opsErrorf(op.String(), err)
		}
		x, err := res.Double(at)
		if err != nil {
			return nil, opsErrorf(op.String(), err)
		}
		if err = res.SetDouble(at, op.apply(x, y)); err != nil {
			return nil, opsErrorf(op.String(), err)
		}
	}
	announce(res, o)

	return res, nil
}

// union yields every key of a, then every key of b not already yielded.
func union(a, b iter.Seq[coords.Coordinates]) iter.Seq[coords.Coordinates] {
	return func(yield func(coords.Coordinates) bool) {
		seen := make(map[coords.Coordinates]struct{})
		for c := range a {
			seen[c] = struct{}{}
			if !yield(c) {
				return
			}
		}
		for c := range b {
			if _, dup := seen[c]; dup {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// intersection yields the keys of a that b also yields.
func intersection(a, b iter.Seq[coords.Coordinates]) iter.Seq[coords.Coordinates] {
	return func(yield func(coords.Coordinates) bool) {
		inB := make(map[coords.Coordinates]struct{})
		for c := range b {
			inB[c] = struct{}{}
		}
		for c := range a {
			if _, ok := inB[c]; !ok {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}
