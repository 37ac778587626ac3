package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency code used when none is configured.
const DefaultCurrency = "FCFA"

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// Round rounds half away from zero to the given number of decimals.
func (m Money) Round(decimals int32) Money {
	return Money{m.Decimal.Round(decimals)}
}

// RoundUp rounds toward positive infinity at the given number of decimals.
func (m Money) RoundUp(decimals int32) Money {
	return Money{m.Decimal.RoundCeil(decimals)}
}

// Required rounds an amount that must be paid in full up to whole units.
// Cent-level float noise is dropped first so 100.0000001 stays 100.
func (m Money) Required() Money {
	return m.Round(2).RoundUp(0)
}

// Quarterly converts a monthly amount to a quarterly one.
func (m Money) Quarterly() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(3))}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Float returns the amount as a float64.
func (m Money) Float() float64 {
	f, _ := m.Decimal.Float64()
	return f
}

// String returns the amount with two decimals.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Grouped renders the amount rounded to whole units with a space between
// groups of three digits, e.g. 1500000 -> "1 500 000".
func (m Money) Grouped() string {
	s := m.Decimal.StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	out := b.String()
	if neg && out != "0" {
		out = "-" + out
	}
	return out
}

// Format renders the grouped amount followed by the currency code.
func (m Money) Format(currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return m.Grouped() + " " + currency
}
