// SPDX-License-Identifier: MIT

package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates a coordinate outside the declared size.
	ErrOutOfRange = errors.New("storage: coordinate out of range")

	// ErrArity indicates a coordinate whose dimension count differs from the size.
	ErrArity = errors.New("storage: coordinate arity mismatch")

	// ErrBadShape indicates an invalid size vector (negative or too many extents).
	ErrBadShape = errors.New("storage: invalid shape")

	// ErrTooLarge indicates a dense shape whose cell count does not fit in memory indexing.
	ErrTooLarge = errors.New("storage: dense shape too large")
)

// storageErrorf wraps err with the method tag and the offending coordinates.
func storageErrorf(method string, at fmt.Stringer, err error) error {
	return fmt.Errorf("%s%s: %w", method, at, err)
}
