// SPDX-License-Identifier: MIT

package ops

import (
	"errors"
	"fmt"
)

// ErrDivideByZero is returned by the big-decimal path of Divide and by
// Mean over an empty axis. The float64 path follows IEEE 754 instead.
var ErrDivideByZero = errors.New("ops: division by zero")

// opsErrorf wraps err with an operation tag.
func opsErrorf(tag string, err error) error {
	return fmt.Errorf("ops: %s: %w", tag, err)
}
