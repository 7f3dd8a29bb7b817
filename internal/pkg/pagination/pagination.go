// internal/pkg/pagination/pagination.go
package pagination

// MinWindowSize is the smallest usable button window; below this the
// first/current/last pages cannot be told apart.
const MinWindowSize = 3

// Entry is one element of a rendered pager: either a numbered page button
// or an ellipsis gap marker.
type Entry struct {
	Page     int  `json:"page"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Info represents pagination metadata for list responses
type Info struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Pages returns the number of pages needed to show total records at the
// given page size.
func Pages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Window computes the page buttons a pager should render around the current
// page: a centered run of consecutive pages, stitched to the first and last
// page with ellipsis markers when there is a gap.
//
// Pages are zero-based. Out-of-range current values are clamped, windowSize
// is clamped up to MinWindowSize, and totalPages <= 0 yields an empty slice.
// The result never holds duplicate pages or adjacent ellipses and is strictly
// ascending ignoring ellipsis entries.
func Window(current, totalPages, windowSize int) []Entry {
	if totalPages <= 0 {
		return []Entry{}
	}

	current = clamp(current, 0, totalPages-1)
	if windowSize < MinWindowSize {
		windowSize = MinWindowSize
	}

	half := windowSize / 2
	start := current - half
	end := current + half
	if windowSize%2 == 0 {
		end-- // keep the window exactly windowSize wide
	}

	// Shift the window back in range without shrinking it.
	if start < 0 {
		end += -start
		start = 0
	}
	if end > totalPages-1 {
		diff := end - (totalPages - 1)
		start = max(0, start-diff)
		end = totalPages - 1
	}

	entries := make([]Entry, 0, windowSize+4)

	// Leading section: the first page is always reachable.
	if start > 0 {
		entries = append(entries, Entry{Page: 0})
		if start > 1 {
			entries = append(entries, Entry{Ellipsis: true})
		}
	}

	for i := start; i <= end; i++ {
		entries = append(entries, Entry{Page: i})
	}

	// Trailing section, symmetric to the leading one.
	if end < totalPages-1 {
		if end < totalPages-2 {
			entries = append(entries, Entry{Ellipsis: true})
		}
		entries = append(entries, Entry{Page: totalPages - 1})
	}

	return entries
}

// First returns the first page index.
func First() int {
	return 0
}

// Prev returns the page before current, clamped to the first page.
func Prev(current int) int {
	return max(0, current-1)
}

// Next returns the page after current, clamped to the last page.
func Next(current, totalPages int) int {
	return min(totalPages-1, current+1)
}

// Last returns the last page index, or 0 when there are no pages.
func Last(totalPages int) int {
	return max(0, totalPages-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
