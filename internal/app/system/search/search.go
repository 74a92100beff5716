// internal/app/system/search/search.go
package search

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Fold returns the case-insensitive form of s used for matching.
func Fold(s string) string {
	return text.Fold(strings.TrimSpace(s))
}

// AnyContains reports whether any non-nil field contains the already folded
// query. An empty query matches everything.
func AnyContains(folded string, fields ...*string) bool {
	if folded == "" {
		return true
	}
	for _, f := range fields {
		if f != nil && strings.Contains(text.Fold(*f), folded) {
			return true
		}
	}
	return false
}

// List splits a comma separated filter value, trimming each entry and
// dropping blanks. It returns nil when nothing remains.
//
//	search.List("Crew Lead, Technician,") // ["Crew Lead" "Technician"]
func List(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EqualsAnyFold reports whether s equals one of vals ignoring case and
// surrounding space.
func EqualsAnyFold(s string, vals ...string) bool {
	s = strings.TrimSpace(s)
	for _, v := range vals {
		if strings.EqualFold(s, strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}
