// SPDX-License-Identifier: MIT

package matrix

import "strings"

// ValueKind is the representation of the values a matrix holds.
type ValueKind int

const (
	// Double stores float64.
	Double ValueKind = iota
	// BigDecimal stores github.com/shopspring/decimal.Decimal.
	BigDecimal
	// BigInteger stores *math/big.Int.
	BigInteger
	// Object stores arbitrary values (any).
	Object
	// String stores string.
	String
)

var valueKindNames = [...]string{"double", "bigdecimal", "biginteger", "object", "string"}

// String returns the lower-case kind name.
func (k ValueKind) String() string {
	if k < 0 || int(k) >= len(valueKindNames) {
		return "unknown"
	}

	return valueKindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k ValueKind) Valid() bool { return k >= Double && k <= String }

// ParseValueKind maps a kind name (case-insensitive) to a ValueKind.
func ParseValueKind(s string) (ValueKind, error) {
	s = strings.ToLower(s)
	for i, name := range valueKindNames {
		if s == name {
			return ValueKind(i), nil
		}
	}

	return Double, matrixErrorf("ParseValueKind("+s+")", ErrUnknownValueKind)
}

// StorageKind is how a matrix keeps its cells.
type StorageKind int

const (
	// DenseStorage keeps every cell in a flat buffer.
	DenseStorage StorageKind = iota
	// SparseStorage keeps only populated cells.
	SparseStorage
	// CalculationStorage keeps no cells; values are computed from sources on read.
	CalculationStorage
)

// String returns "dense", "sparse" or "calculation".
func (k StorageKind) String() string {
	switch k {
	case DenseStorage:
		return "dense"
	case SparseStorage:
		return "sparse"
	case CalculationStorage:
		return "calculation"
	default:
		return "unknown"
	}
}

// ParseStorageKind maps "dense"/"sparse" to a StorageKind. CalculationStorage
// is not a storage a caller can request.
func ParseStorageKind(s string) (StorageKind, error) {
	switch strings.ToLower(s) {
	case "dense", "":
		return DenseStorage, nil
	case "sparse":
		return SparseStorage, nil
	default:
		return DenseStorage, matrixErrorf("ParseStorageKind("+s+")", ErrUnknownValueKind)
	}
}

// Ret selects how Calc materializes a Calculation.
type Ret int

const (
	// RetNew allocates a fresh matrix holding the results.
	RetNew Ret = iota
	// RetLink returns a live read-through view.
	RetLink
	// RetOrig writes the results back into the first source.
	RetOrig
)

// String returns "new", "link" or "orig".
func (r Ret) String() string {
	switch r {
	case RetNew:
		return "new"
	case RetLink:
		return "link"
	case RetOrig:
		return "orig"
	default:
		return "unknown"
	}
}

// ParseRet maps "new"/"link"/"orig" (case-insensitive) to a Ret.
func ParseRet(s string) (Ret, error) {
	switch strings.ToLower(s) {
	case "new", "":
		return RetNew, nil
	case "link":
		return RetLink, nil
	case "orig":
		return RetOrig, nil
	default:
		return RetNew, matrixErrorf("ParseRet("+s+")", ErrUnsupportedOperation)
	}
}

// Dimension is the acting dimension of a reducing calculation.
type Dimension int

const (
	// Row reduces along rows: the result has one row.
	Row Dimension = iota
	// Column reduces along columns: the result has one column.
	Column
	// All reduces the whole matrix to a single cell.
	All
)

// String returns "row", "column" or "all".
func (d Dimension) String() string {
	switch d {
	case Row:
		return "row"
	case Column:
		return "column"
	default:
		return "all"
	}
}
