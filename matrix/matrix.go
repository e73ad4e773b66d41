// SPDX-License-Identifier: MIT

package matrix

import (
	"iter"
	"math/big"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/katalvlaran/lvmatrix/annotation"
	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/storage"
)

// Matrix is a coordinate-addressed N-dimensional matrix.
//
// Every accessor validates c against Size() and returns ErrArity or
// ErrOutOfRange instead of clamping. Typed accessors convert between value
// kinds; a failed conversion returns ErrValueConversion.
//
// Concurrency: concurrent reads are safe. Dense matrices have no internal
// locking, so concurrent writers must target distinct cells and must not
// overlap readers of the same cells. Sparse matrices serialize all access.
type Matrix interface {
	// ID identifies the matrix in events.
	ID() uuid.UUID
	// Size returns a copy of the declared extents.
	Size() coords.Size
	ValueKind() ValueKind
	StorageKind() StorageKind
	// ValueCount is product(Size) for dense matrices and the number of
	// populated/defined cells otherwise.
	ValueCount() int64

	Double(c coords.Coordinates) (float64, error)
	SetDouble(c coords.Coordinates, v float64) error
	Object(c coords.Coordinates) (any, error)
	SetObject(c coords.Coordinates, v any) error
	BigDecimal(c coords.Coordinates) (decimal.Decimal, error)
	SetBigDecimal(c coords.Coordinates, v decimal.Decimal) error
	BigInteger(c coords.Coordinates) (*big.Int, error)
	SetBigInteger(c coords.Coordinates, v *big.Int) error
	Text(c coords.Coordinates) (string, error)
	SetText(c coords.Coordinates, v string) error

	// AllCoordinates yields every coordinate of Size() in row-major order.
	AllCoordinates() iter.Seq[coords.Coordinates]
	// AvailableCoordinates yields only populated cells for sparse matrices,
	// the calculation's availability for views, and AllCoordinates otherwise.
	AvailableCoordinates() iter.Seq[coords.Coordinates]

	// Annotation returns the attached annotation (nil when none). The result
	// is the live object, not a copy.
	Annotation() *annotation.Annotation
	SetAnnotation(a *annotation.Annotation)

	// Clone returns an independent deep copy with a new ID. Views are
	// materialized into fresh storage; a view whose evaluation fails clones
	// to nil (see Materialize).
	Clone() Matrix
}

// DoubleArray is implemented by matrices that can expose a raw contiguous
// float64 buffer. ok is false when the matrix does not hold float64 values.
type DoubleArray interface {
	Doubles() (data []float64, ok bool)
	Layout() storage.Layout
}

// SparseStore is implemented by sparse matrices.
type SparseStore interface {
	// Delete removes c; it reports whether c was populated.
	Delete(c coords.Coordinates) bool
	// Populated returns the number of resident entries.
	Populated() int
	// Capacity returns the entry bound or storage.Unbounded.
	Capacity() int
	// Evictions returns how many entries capacity pressure removed.
	Evictions() int64
}

// Linked is implemented by RetLink views.
type Linked interface {
	Calculation() Calculation
}

// AsDoubleArray returns m's raw float64 buffer and its layout when m exposes
// one.
func AsDoubleArray(m Matrix) ([]float64, storage.Layout, bool) {
	da, ok := m.(DoubleArray)
	if !ok {
		return nil, storage.RowMajor, false
	}
	data, ok := da.Doubles()
	if !ok {
		return nil, storage.RowMajor, false
	}

	return data, da.Layout(), true
}

// IsSparse reports whether m keeps only populated cells.
func IsSparse(m Matrix) bool { return m.StorageKind() == SparseStorage }
