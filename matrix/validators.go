// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for common validation checks.
//   - Keep kernels minimal by delegating nil/shape/arity checks here.
//   - Return tagged sentinel errors so callers can match with errors.Is.
//
// Note:
//   - Composite validators follow a fixed sequence: NotNil -> Shape.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures every matrix reference is non-nil.
// Returns ErrNilMatrix. Complexity: O(len(ms)).
func ValidateNotNil(ms ...Matrix) error {
	for _, m := range ms {
		if m == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateSameSize ensures a and b are non-nil and have identical sizes.
// Returns ErrNilMatrix or ErrShapeMismatch.
// Complexity: O(dims).
func ValidateSameSize(a, b Matrix) error {
	if err := ValidateNotNil(a, b); err != nil {
		return err
	}
	if !a.Size().Equal(b.Size()) {
		return fmt.Errorf("ValidateSameSize(%s, %s): %w", a.Size(), b.Size(), ErrShapeMismatch)
	}

	return nil
}

// Validate2D ensures m is non-nil and two-dimensional.
// Returns ErrNilMatrix or ErrDimensionMismatch.
func Validate2D(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Size().Dims() != 2 {
		return validatorErrorf("Validate2D", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare ensures m is a 2-D matrix with Rows == Columns.
// Returns ErrNilMatrix or ErrDimensionMismatch.
func ValidateSquare(m Matrix) error {
	if err := Validate2D(m); err != nil {
		return err
	}
	s := m.Size()
	if s.Rows() != s.Columns() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateArity ensures a kernel received exactly n operands.
func ValidateArity(args []Matrix, n int) error {
	if len(args) != n {
		return fmt.Errorf("ValidateArity: want %d operands, got %d: %w", n, len(args), ErrArity)
	}

	return ValidateNotNil(args...)
}
