// Package money represents monetary amounts as integer minor currency units
// (cents). Arithmetic on cents stays exact; decimal strings exist only at the
// display boundary.
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is an amount in minor currency units.
type Cents int64

// Format renders the amount as a decimal string with two fraction digits,
// e.g. 2599 -> "25.99", -50 -> "-0.50".
func (c Cents) Format() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// String implements fmt.Stringer.
func (c Cents) String() string {
	return c.Format()
}

// Parse converts a decimal string such as "25.99" or "5" into cents.
// At most two fraction digits are accepted.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse money: empty string")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 2 {
		return 0, fmt.Errorf("parse money %q: more than two fraction digits", s)
	}
	// Pad "5.9" to 590 cents, "5" to 500 cents.
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	major, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}
	minor, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}

	v := major*100 + minor
	if neg {
		v = -v
	}
	return Cents(v), nil
}
