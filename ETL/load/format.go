package load

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat форматирует число для CSV: кратчайшая десятичная запись,
// целые значения с ".0", NaN как пустое поле
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if math.IsInf(v, 0) {
		if v > 0 {
			return "inf"
		}
		return "-inf"
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
