package repository

import "math"

// pageOffset returns the row offset for a 1-based page. ok is false when the
// page cannot hold any rows or the offset would not fit in an int.
func pageOffset(page, limit int) (offset int, ok bool) {
	if page < 1 || limit < 1 {
		return 0, false
	}
	if page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}
