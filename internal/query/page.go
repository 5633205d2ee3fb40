package query

import "math"

// Page is a zero-based window over an ordered result
type Page struct {
	Number int
	Size   int
}

// Offset is the index of the first row in the window
func (p Page) Offset() int {
	if p.Empty() {
		return 0
	}
	return p.Number * p.Size
}

// Empty reports whether the window cannot contain any row. A window whose
// offset does not fit in an int starts past any stored row, so it is empty too.
func (p Page) Empty() bool {
	return p.Size <= 0 || p.Number < 0 || p.Number > math.MaxInt/p.Size
}
