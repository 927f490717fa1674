package viewer

import (
	"math"
	"strconv"
	"strings"
)

// ClampNumber truncates v toward zero and clamps it into [1, upper].
// Non-finite values map to 1.
func ClampNumber(v float64, upper int) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1
	}
	if upper < 1 {
		upper = 1
	}
	t := math.Trunc(v)
	if t < 1 {
		return 1
	}
	if t > float64(upper) {
		return upper
	}
	return int(t)
}

// ClampDay parses input as a number and clamps it with ClampNumber.
// Unparsable input maps to 1.
func ClampDay(input string, upper int) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 1
	}
	return ClampNumber(v, upper)
}
