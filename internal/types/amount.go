package types

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are stored as NUMERIC(20,8).
const (
	AmountMaxIntegerDigits = 12
	AmountMaxScale         = 8
)

// Amount is a request-side decimal that only binds from a JSON number.
// decimal.Decimal alone would also accept "100.5".
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return &json.UnmarshalTypeError{Value: "string", Type: reflect.TypeOf(float64(0))}
	}
	return a.Decimal.UnmarshalJSON(data)
}

// NewAmount is a convenience for callers that already hold a decimal.
func NewAmount(d decimal.Decimal) *Amount {
	return &Amount{Decimal: d}
}

// AmountFits reports whether d has at most AmountMaxIntegerDigits integer
// digits and AmountMaxScale decimal places. It works on the coefficient and
// exponent only, so huge exponents are never expanded.
func AmountFits(d decimal.Decimal) bool {
	coef := strings.TrimLeft(d.Coefficient().String(), "-")
	exp := int64(d.Exponent())

	trimmed := strings.TrimRight(coef, "0")
	if trimmed == "" {
		return true
	}
	exp += int64(len(coef) - len(trimmed))

	if exp < -AmountMaxScale {
		return false
	}
	return int64(len(trimmed))+exp <= AmountMaxIntegerDigits
}
