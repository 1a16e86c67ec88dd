// Package money provides amount coercion, rounding and formatting for BDT
// values. Every numeric input crossing an external boundary goes through
// Parse so the zero-on-invalid policy lives in exactly one place.
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Tolerance is the rounding slack allowed on paid/due comparisons.
const Tolerance = 0.01

var bdtPrinter = message.NewPrinter(language.English)

// Round rounds to 2 decimal places, half away from zero.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// Parse coerces arbitrary user input to a non-negative amount. Blank,
// nil and non-numeric values become 0 rather than propagating an error;
// counter clerks routinely clear fields mid-edit and the form must keep
// computing.
func Parse(v any) float64 {
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return 0
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f < 0 {
		return 0
	}
	return f
}

// ParseQuantity coerces input to a non-negative whole quantity.
func ParseQuantity(v any) int {
	n, err := cast.ToIntE(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Format renders an amount with exactly two decimals, no currency symbol.
func Format(v float64) string {
	return fmt.Sprintf("%.2f", Round(v))
}

// FormatBDT renders an amount with digit grouping and the taka prefix for
// print payloads, e.g. "BDT 12,345.00".
func FormatBDT(v float64) string {
	return bdtPrinter.Sprintf("BDT %.2f", Round(v))
}
