// SPDX-License-Identifier: MIT

package coords

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeIndex is returned when a coordinate component is below zero.
	ErrNegativeIndex = errors.New("coords: negative index")

	// ErrArity indicates a coordinate/size dimension count that is zero,
	// larger than MaxDimensions, or different from the one expected.
	ErrArity = errors.New("coords: dimension count mismatch")

	// ErrOutOfRange indicates a coordinate outside the bounds of a Size.
	ErrOutOfRange = errors.New("coords: coordinate out of range")

	// ErrBadSize indicates a size vector with a negative extent.
	ErrBadSize = errors.New("coords: invalid size")
)

// coordsErrorf wraps a sentinel with an operation tag.
func coordsErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
