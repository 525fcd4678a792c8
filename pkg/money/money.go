// Package money holds currency amounts as integer cents and exchanges them
// with callers as two-decimal numbers.
package money

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Cents is an amount in the smallest currency unit.
type Cents int64

// MaxDecimal is the largest amount accepted from callers. Line totals and
// report sums of such amounts stay well inside int64 cents.
const MaxDecimal = float64(math.MaxInt64 / 100 / 1000)

// InRange reports whether v is a finite amount with |v| <= MaxDecimal.
func InRange(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) <= MaxDecimal
}

// FromDecimal converts a decimal amount (4.5) to cents (450), rounding half
// away from zero. Amounts outside InRange saturate at the int64 bounds.
func FromDecimal(v float64) Cents {
	c := math.Round(v * 100)
	switch {
	case math.IsNaN(c):
		return 0
	case c >= math.MaxInt64:
		return math.MaxInt64
	case c <= math.MinInt64:
		return math.MinInt64
	}
	return Cents(c)
}

// Decimal returns the amount as a decimal number.
func (c Cents) Decimal() float64 {
	return float64(c) / 100
}

// Mul multiplies by a whole quantity, saturating at the int64 bounds.
func (c Cents) Mul(qty int) Cents {
	if c == 0 || qty == 0 {
		return 0
	}
	p := c * Cents(qty)
	if p/Cents(qty) != c || (qty == -1 && c == math.MinInt64) {
		if (c < 0) != (qty < 0) {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return p
}

// Add sums two amounts, saturating at the int64 bounds.
func (c Cents) Add(d Cents) Cents {
	sum := c + d
	switch {
	case d > 0 && sum < c:
		return math.MaxInt64
	case d < 0 && sum > c:
		return math.MinInt64
	}
	return sum
}

func (c Cents) String() string {
	v := int64(c)
	if v < 0 {
		// uint64 keeps MinInt64 representable
		u := uint64(-(v + 1)) + 1
		return fmt.Sprintf("-%d.%02d", u/100, u%100)
	}
	return fmt.Sprintf("%d.%02d", v/100, v%100)
}

// MarshalJSON emits the decimal form, e.g. 4.5 for 450 cents.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(c.Decimal(), 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a decimal number.
func (c *Cents) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("money: %w", err)
	}
	if !InRange(v) {
		return fmt.Errorf("money: amount %v out of range", v)
	}
	*c = FromDecimal(v)
	return nil
}
