// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every message is prefixed with "matrix: ..." so logs stay greppable.
// Call sites wrap with an operation tag through matrixErrorf; callers match
// with errors.Is. Public surfaces never panic on user-triggered conditions;
// option constructors panic on nonsensical programmer input.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrBadShape is returned when a requested size is invalid
	// (no dimensions, too many dimensions, negative extents).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a coordinate outside the declared size.
	// Public accessors return it, they never clamp.
	ErrOutOfRange = errors.New("matrix: coordinate out of range")

	// ErrArity indicates a coordinate whose dimension count differs from the
	// matrix, or a kernel called with the wrong number of operands.
	ErrArity = errors.New("matrix: arity mismatch")

	// ErrShapeMismatch indicates operands (or an Orig target) whose sizes
	// differ where equal sizes are required.
	ErrShapeMismatch = errors.New("matrix: shape mismatch")

	// ErrDimensionMismatch indicates incompatible dimension counts or inner
	// dimensions, e.g. a product where a.Columns != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrUnsupportedOperation marks a write through a Link view whose
	// calculation has no inverse, or an operation a matrix cannot perform.
	ErrUnsupportedOperation = errors.New("matrix: unsupported operation")

	// ErrUnknownKernel is the resolution error for Kernel(name).
	ErrUnknownKernel = errors.New("matrix: unknown kernel")

	// ErrUnknownValueKind indicates a ValueKind or StorageKind outside the
	// supported set.
	ErrUnknownValueKind = errors.New("matrix: unknown value kind")

	// ErrValueConversion indicates a value that cannot be represented in the
	// requested kind (e.g. "abc" read as Double, NaN read as BigDecimal).
	ErrValueConversion = errors.New("matrix: value conversion failed")
)

// matrixErrorf wraps err with an operation tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
