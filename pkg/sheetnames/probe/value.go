package probe

import (
	"math"
	"strconv"
)

// TypedValue converts a displayed cell value to a typed one.
// Returns int64 for integers, float64 for decimals, or the original string.
func TypedValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float; ParseFloat also accepts NaN/Inf spellings, which have
	// no JSON encoding, so those stay text
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	// Return as string
	return s
}
