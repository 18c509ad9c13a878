package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseDecimal converts a raw cell value into a float64. The exports mix
// period and comma decimal separators ("1.5" and "1,5"), and the larger
// monetary columns occasionally carry period thousand separators
// ("1.234,56"). The boolean is false when the value cannot be coerced,
// and the returned sentinel is NaN so the row is kept rather than dropped.
func ParseDecimal(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "nan") {
		return math.NaN(), false
	}
	if strings.Contains(value, ",") {
		// Comma is the decimal separator; any periods are thousand marks.
		value = strings.ReplaceAll(value, ".", "")
		value = strings.Replace(value, ",", ".", 1)
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN(), false
	}
	return parsed, true
}
