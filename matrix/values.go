// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Zero returns the default value of kind: the value an absent sparse cell
// reads as. Object has a nil default.
func Zero(kind ValueKind) any {
	switch kind {
	case Double:
		return 0.0
	case BigDecimal:
		return decimal.Zero
	case BigInteger:
		return new(big.Int)
	case String:
		return ""
	default:
		return nil
	}
}

// ConvertValue converts v to the Go representation of kind:
// float64, decimal.Decimal, *big.Int, string, or v itself for Object.
// Errors: ErrValueConversion, ErrUnknownValueKind.
func ConvertValue(v any, kind ValueKind) (any, error) {
	switch kind {
	case Double:
		return ToFloat64(v)
	case BigDecimal:
		return ToDecimal(v)
	case BigInteger:
		return ToBigInt(v)
	case String:
		return ToText(v), nil
	case Object:
		return v, nil
	default:
		return nil, matrixErrorf("ConvertValue", ErrUnknownValueKind)
	}
}

// ToFloat64 converts a cell value to float64. nil reads as 0, bool as 0/1,
// strings are parsed with strconv.ParseFloat after trimming spaces.
func ToFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case decimal.Decimal:
		return x.InexactFloat64(), nil
	case *big.Int:
		if x == nil {
			return 0, nil
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, conversionErrorf("float64", v)
		}
		return f, nil
	case fmt.Stringer:
		return ToFloat64(x.String())
	default:
		return 0, conversionErrorf("float64", v)
	}
}

// ToDecimal converts a cell value to decimal.Decimal. NaN and ±Inf cannot be
// represented and fail with ErrValueConversion.
func ToDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return x, nil
	case *big.Int:
		if x == nil {
			return decimal.Zero, nil
		}
		return decimal.NewFromBigInt(x, 0), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero, conversionErrorf("decimal", v)
		}
		return d, nil
	default:
		f, err := ToFloat64(v)
		if err != nil {
			return decimal.Zero, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, conversionErrorf("decimal", v)
		}
		return decimal.NewFromFloat(f), nil
	}
}

// ToBigInt converts a cell value to a fresh *big.Int, truncating toward zero.
func ToBigInt(v any) (*big.Int, error) {
	switch x := v.(type) {
	case nil:
		return new(big.Int), nil
	case *big.Int:
		if x == nil {
			return new(big.Int), nil
		}
		return new(big.Int).Set(x), nil
	case int64:
		return big.NewInt(x), nil
	case int:
		return big.NewInt(int64(x)), nil
	case string:
		s := strings.TrimSpace(x)
		if b, ok := new(big.Int).SetString(s, 10); ok {
			return b, nil
		}
		d, err := ToDecimal(s)
		if err != nil {
			return nil, conversionErrorf("big.Int", v)
		}
		return d.BigInt(), nil
	default:
		d, err := ToDecimal(v)
		if err != nil {
			return nil, err
		}
		return d.BigInt(), nil
	}
}

// ToText renders a cell value as a string. nil renders as "".
func ToText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case decimal.Decimal:
		return x.String()
	case *big.Int:
		if x == nil {
			return "0"
		}
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func conversionErrorf(target string, v any) error {
	return fmt.Errorf("convert %T(%v) to %s: %w", v, v, target, ErrValueConversion)
}
