// Package format renders quantities for reports and figures. Numbers are
// truncated to a fixed precision before display so tables stay readable, but
// never before computation.
package format

import (
	"math"
	"strconv"
	"strings"
)

// Rendering below this magnitude switches to scientific notation, because a
// long run of leading zeros reads worse than an exponent.
const coerceScientificExponent = 3

// Blunt renders a number with at most the given decimal places, dropping
// trailing zeros.
func Blunt(number float64, maxDecimalPlaces int) string {
	if math.IsNaN(number) {
		return "nan"
	}
	if number == 0 {
		return "0"
	}
	if math.IsInf(number, 1) {
		return "inf"
	}
	if math.IsInf(number, -1) {
		return "-inf"
	}
	s := strconv.FormatFloat(number, 'f', maxDecimalPlaces, 64)
	return stripTrailingZeros(s)
}

// Dull renders a number with at most the given significant figures. Small
// magnitudes are coerced to scientific notation, and values that round to an
// integer are rendered as one.
func Dull(number float64, maxSignificantFigures int) string {
	if math.IsNaN(number) {
		return "nan"
	}
	if number == 0 {
		return "0"
	}
	if math.IsInf(number, 1) {
		return "inf"
	}
	if math.IsInf(number, -1) {
		return "-inf"
	}

	var s string
	if math.Log10(math.Abs(number)) < -(coerceScientificExponent - 1) {
		s = strconv.FormatFloat(number, 'E', maxSignificantFigures-1, 64)
		s = stripMantissaZeros(s)
	} else {
		s = strconv.FormatFloat(number, 'G', maxSignificantFigures, 64)
	}
	s = stripExponentZeros(s)

	rounded, err := strconv.ParseFloat(s, 64)
	if err == nil && rounded == math.Trunc(rounded) {
		return strconv.FormatFloat(rounded, 'f', -1, 64)
	}
	return s
}

// stripTrailingZeros removes trailing zeros after a decimal point, and the
// point itself if nothing remains behind it.
func stripTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// stripMantissaZeros removes trailing zeros from the mantissa of a
// scientific rendering, e.g. "1.200E-03" becomes "1.2E-03".
func stripMantissaZeros(s string) string {
	i := strings.IndexByte(s, 'E')
	if i < 0 {
		return s
	}
	return stripTrailingZeros(s[:i]) + s[i:]
}

// stripExponentZeros removes leading zeros from the exponent, e.g.
// "1.2E-03" becomes "1.2E-3".
func stripExponentZeros(s string) string {
	i := strings.IndexByte(s, 'E')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	exponent := strings.TrimLeft(s[i+2:], "0")
	if exponent == "" {
		exponent = "0"
	}
	return s[:i+2] + exponent
}
