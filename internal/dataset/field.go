package dataset

import (
	"math"
	"strconv"
	"strings"
)

// IsBlank reports whether a field is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsNumeric reports whether a field parses as a finite decimal number:
// optional sign, digits, optional fractional part, optional exponent.
// Surrounding whitespace is tolerated. Blank text, hex floats, inf, nan
// and overflowing exponents all report false.
func IsNumeric(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" || hexPrefixed(t) {
		return false
	}
	f, err := strconv.ParseFloat(t, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// ParseNumeric parses a field as float64 and never fails: anything
// IsNumeric rejects comes back as 0.0. The zero is a sentinel a caller
// cannot tell apart from a literal "0", so call sites that need the
// distinction must gate on IsNumeric first. Group reduction is the one
// caller that sums without gating; see rollup.
func ParseNumeric(s string) float64 {
	t := strings.TrimSpace(s)
	if t == "" || hexPrefixed(t) {
		return 0
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

func hexPrefixed(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
