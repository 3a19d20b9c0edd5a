package tracker

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is an exact decimal amount of money, in major units.
//
// Amounts are relabeled, never converted: the currency is a display setting.
type Amount struct {
	value decimal.Decimal
}

// A returns the Amount of value.
func A[T float64 | int | int64 | decimal.Decimal](value T) Amount {
	switch v := any(value).(type) {
	case float64:
		return Amount{decimal.NewFromFloat(v)}
	case int:
		return Amount{decimal.NewFromInt(int64(v))}
	case int64:
		return Amount{decimal.NewFromInt(v)}
	case decimal.Decimal:
		return Amount{v}
	}
	panic("unreachable")
}

// ParseAmount parses a decimal amount like "12.5" or "-3".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, fmt.Errorf("%w: invalid amount %q", ErrValidation, s)
	}
	return Amount{d}, nil
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal { return a.value }

func (a Amount) Add(b Amount) Amount       { return Amount{a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount       { return Amount{a.value.Sub(b.value)} }
func (a Amount) Neg() Amount               { return Amount{a.value.Neg()} }
func (a Amount) Abs() Amount               { return Amount{a.value.Abs()} }
func (a Amount) Cmp(b Amount) int          { return a.value.Cmp(b.value) }
func (a Amount) Equal(b Amount) bool       { return a.value.Equal(b.value) }
func (a Amount) IsZero() bool              { return a.value.IsZero() }
func (a Amount) IsPositive() bool          { return a.value.IsPositive() }
func (a Amount) IsNegative() bool          { return a.value.IsNegative() }
func (a Amount) LessThan(b Amount) bool    { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool { return a.value.GreaterThan(b.value) }
func (a Amount) InexactFloat64() float64   { return a.value.InexactFloat64() }
func (a Amount) Round(places int32) Amount { return Amount{a.value.Round(places)} }

// Percent returns a as a percentage of total, 0 if total is zero.
func (a Amount) Percent(total Amount) float64 {
	if total.IsZero() {
		return 0
	}
	return a.value.Div(total.value).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// String returns the amount with two decimals.
func (a Amount) String() string { return a.value.StringFixed(2) }

// MarshalJSON writes the amount as a JSON number with all its digits.
func (a Amount) MarshalJSON() ([]byte, error) { return []byte(a.value.String()), nil }

// UnmarshalJSON reads a JSON number, or a string holding a number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Amount{}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid amount %s", data)
		}
		n = json.Number(s)
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", data, err)
	}
	a.value = d
	return nil
}

// Sum returns the total of amounts.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
