package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"/", 10},
		{"/?page=3", 3},
		{"/?page=0", 10},
		{"/?page=-2", 10},
		{"/?page=abc", 10},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		if got := ParseInt(r, "page", 10); got != tt.want {
			t.Errorf("ParseInt(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}

func TestClampSize(t *testing.T) {
	tests := []struct {
		size, def, max, want int
	}{
		{0, 10, 100, 10},
		{-5, 10, 100, 10},
		{500, 10, 100, 100},
		{25, 10, 100, 25},
		{0, 0, 100, 1},
	}
	for _, tt := range tests {
		if got := ClampSize(tt.size, tt.def, tt.max); got != tt.want {
			t.Errorf("ClampSize(%d,%d,%d) = %d, want %d", tt.size, tt.def, tt.max, got, tt.want)
		}
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name                string
		total, page, size   int
		wantPage, wantPages int
		wantStart, wantEnd  int
	}{
		{"first page", 25, 1, 10, 1, 3, 0, 10},
		{"last partial page", 25, 3, 10, 3, 3, 20, 25},
		{"past the end clamps", 25, 9, 10, 3, 3, 20, 25},
		{"below one", 25, 0, 10, 1, 3, 0, 10},
		{"empty", 0, 4, 10, 1, 1, 0, 0},
		{"exact fit", 20, 2, 10, 2, 2, 10, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Compute(tt.total, tt.page, tt.size)
			if w.Page != tt.wantPage || w.Pages != tt.wantPages || w.Start != tt.wantStart || w.End != tt.wantEnd {
				t.Errorf("Compute = %+v, want page=%d pages=%d [%d:%d]",
					w, tt.wantPage, tt.wantPages, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}
	got := Slice(rows, Compute(len(rows), 2, 2))
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("Slice = %v, want [3 4]", got)
	}
	if got := Slice([]int{}, Compute(0, 1, 10)); len(got) != 0 {
		t.Errorf("Slice on empty = %v", got)
	}
}
