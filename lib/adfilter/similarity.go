package adfilter

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// similarity returns the Ratcliff/Obershelp ratio between two strings in [0, 1].
// Both inputs are case-folded first. Two empty strings are considered identical (1.0).
func similarity(a, b string) float64 {
	// difflib matches sequences of strings, feed it per-rune slices so
	// multi-byte scripts compare character by character
	ra := strings.Split(strings.ToLower(a), "")
	rb := strings.Split(strings.ToLower(b), "")
	return difflib.NewMatcher(ra, rb).Ratio()
}
