// SPDX-License-Identifier: MIT

package linalg

import (
	"errors"
	"fmt"
)

// ErrSingular is returned when a pivot vanishes during factorization.
var ErrSingular = errors.New("linalg: matrix is singular")

const (
	opMtimes  = "Mtimes"
	opLU      = "Factorize"
	opInverse = "Inverse"
	opSolve   = "Solve"
	opDet     = "Det"
)

// linalgErrorf wraps err with an operation tag.
func linalgErrorf(tag string, err error) error {
	return fmt.Errorf("linalg: %s: %w", tag, err)
}
