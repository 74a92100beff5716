// Package scoring derives aggregate values from evaluation items.
package scoring

import (
	"math"
	"strings"
)

// Overall returns the arithmetic mean of the non-nil scores, rounded to two
// decimal places, or nil when no score is present. NaN and infinite values
// are treated as missing.
func Overall(scores []*float64) *float64 {
	var sum float64
	n := 0
	for _, s := range scores {
		if s == nil || math.IsNaN(*s) || math.IsInf(*s, 0) {
			continue
		}
		sum += *s
		n++
	}
	if n == 0 {
		return nil
	}
	mean := math.Round(sum/float64(n)*100) / 100
	return &mean
}

// DeriveCategory guesses a category from a course name: the first word
// before any ":" upper-cased, or "GENERAL". Writes never apply it; callers
// use it to suggest a category.
func DeriveCategory(course string) string {
	left, _, _ := strings.Cut(course, ":")
	fields := strings.Fields(left)
	if len(fields) == 0 {
		return "GENERAL"
	}
	return strings.ToUpper(fields[0])
}
