// Package htmlsanitize cleans user-supplied text before it is stored.
//
// Comment fields on evaluations may carry light formatting and go through
// Sanitize. Every other free-text field is plain text and goes through
// PlainText, which drops markup entirely.
package htmlsanitize

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps safe formatting markup and removes anything executable.
// Text outside the kept tags is returned unescaped: the result is stored
// and served as JSON, not rendered.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return html.UnescapeString(ugc.Sanitize(s))
}

// PlainText strips all markup and returns the remaining text unescaped.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return html.UnescapeString(strict.Sanitize(s))
}
