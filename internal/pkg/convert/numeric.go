// Package convert is the single numeric coercion boundary for
// heterogeneous exchange and persistence inputs. Invalid input is
// rejected with an error rather than defaulted to zero so data-quality
// problems surface instead of silently becoming 0-valued rows.
package convert

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Float coerces strings, json.Number and the common numeric types to a
// finite float64. String input goes through decimal so "0.10" style
// exchange payloads parse exactly.
func Float(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, fmt.Errorf("nil numeric value")
	case float64:
		return checkFinite(t)
	case float32:
		return checkFinite(float64(t))
	case int:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case json.Number:
		return Float(string(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, fmt.Errorf("empty numeric string")
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return 0, fmt.Errorf("invalid numeric string %q: %w", t, err)
		}
		f, _ := d.Float64()
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}

// PositiveFloat is Float plus a strictly-greater-than-zero check, for
// fields like price and amount where zero is as wrong as garbage.
func PositiveFloat(v any) (float64, error) {
	f, err := Float(v)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("value %v is not > 0", f)
	}
	return f, nil
}

// Finite validates a float64 produced elsewhere before it reaches a
// repository row.
func Finite(name string, f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("field %s is not finite: %v", name, f)
	}
	return f, nil
}

func checkFinite(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite float %v", f)
	}
	return f, nil
}
