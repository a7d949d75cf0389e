package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

// Currency is determined by the booking address, never by user input, and is
// never mixed within one computation.
type Currency string

const (
	CurrencyEUR Currency = "EUR" // Portugal addresses
	CurrencyCAD Currency = "CAD" // Canada addresses
)

func (c Currency) Valid() bool {
	return c == CurrencyEUR || c == CurrencyCAD
}

// Amount is a monetary value in minor units (cents). All price arithmetic is
// integer arithmetic; binary floating point never touches money.
type Amount int64

// Cents builds an Amount from minor units.
func Cents(n int64) Amount {
	return Amount(n)
}

// ParseAmount parses a decimal string such as "69.99" or "10" into minor
// units. At most two fraction digits are accepted.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse amount: empty string")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("parse amount %q: more than two fraction digits", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}

	total := units*100 + cents
	if neg {
		total = -total
	}
	return Amount(total), nil
}

// MustAmount is ParseAmount for constants in seeds and tests.
func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Cents() int64 {
	return int64(a)
}

// MulInt multiplies by a whole count (overtime increments, per-room addons).
func (a Amount) MulInt(n int) Amount {
	return a * Amount(n)
}

// String renders the amount with exactly two fraction digits and no currency
// symbol; symbol rendering belongs to the caller's locale layer.
func (a Amount) String() string {
	n := int64(a)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%s%d.%02d", sign, n/100, n%100)
}
