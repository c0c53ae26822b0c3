// Package pagination computes the visible window over an ordered
// collection, plus the navigation affordances into adjacent windows. No
// state is kept between pages; the collection is re-derived on each call.
package pagination

// Window returns the slice [page*size, page*size+size) of items clipped to
// bounds, and whether previous/next pages exist.
func Window[T any](items []T, page, size int) (window []T, hasPrev, hasNext bool) {
	if page < 0 || size <= 0 {
		return nil, false, false
	}

	start := page * size
	if start >= len(items) {
		return nil, page > 0, false
	}

	end := start + size
	if end > len(items) {
		end = len(items)
	}

	return items[start:end], page > 0, len(items) > end
}
