package ledger

import (
	"math"
	"strconv"
	"strings"
)

// formatBalance renders a float the way the public API has always shown
// balances in messages: shortest round-trip digits, a trailing ".0" for
// integral values, and exponent notation outside [1e-4, 1e16).
func formatBalance(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
