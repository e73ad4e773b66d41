// SPDX-License-Identifier: MIT

package distance

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySequence indicates one or both inputs are empty.
	ErrEmptySequence = errors.New("distance: input sequences must be non-empty")

	// ErrLengthMismatch is returned by the pointwise metrics for sequences of
	// different lengths.
	ErrLengthMismatch = errors.New("distance: sequences differ in length")

	// ErrUnknownMetric is returned by ParseMetric.
	ErrUnknownMetric = errors.New("distance: unknown metric")
)

func distanceErrorf(tag string, err error) error {
	return fmt.Errorf("distance: %s: %w", tag, err)
}
