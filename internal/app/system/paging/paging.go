// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// MaxPageSize bounds every page_size/limit parameter.
const MaxPageSize = 100

// ParseInt reads a positive integer query parameter, returning def when the
// parameter is missing, malformed, or below 1.
func ParseInt(r *http.Request, key string, def int) int {
	s := query.Get(r, key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// ClampSize keeps size within [1, max]; non-positive sizes become def.
func ClampSize(size, def, max int) int {
	if size < 1 {
		size = def
	}
	if size < 1 {
		size = 1
	}
	if max > 0 && size > max {
		size = max
	}
	return size
}

// Pages returns the number of pages needed for total rows (at least 1).
func Pages(total, size int) int {
	if size < 1 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Window is one page of an in-memory list.
type Window struct {
	Page  int // 1-based page actually served
	Size  int
	Pages int
	Start int // slice start index
	End   int // slice end index (exclusive)
}

// Compute returns the window for page over total rows. Pages past the end are
// clamped to the last page and pages below 1 become 1.
func Compute(total, page, size int) Window {
	if size < 1 {
		size = 1
	}
	pages := Pages(total, size)
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return Window{Page: page, Size: size, Pages: pages, Start: start, End: end}
}

// Slice returns the rows of a window.
func Slice[T any](rows []T, w Window) []T {
	if w.Start >= len(rows) {
		return []T{}
	}
	end := w.End
	if end > len(rows) {
		end = len(rows)
	}
	return rows[w.Start:end]
}
