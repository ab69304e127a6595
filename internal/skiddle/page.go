package skiddle

import "github.com/iliyamo/event-discovery-booking/internal/model"

// DefaultPageSize is the feed page size used when callers pass a
// non-positive size.
const DefaultPageSize = 10

// Page is one stable slice of a feed result set together with the
// navigation data a caller needs to render pagination controls.
type Page struct {
	Items      []model.ExternalEvent `json:"items"`
	Number     int                   `json:"number"`
	Size       int                   `json:"size"`
	TotalItems int                   `json:"total_items"`
	TotalPages int                   `json:"total_pages"`
	HasPrev    bool                  `json:"has_prev"`
	HasNext    bool                  `json:"has_next"`
}

// Paginate slices items into pages of the given size and returns the
// requested page.  Page numbers are 1-based.  Requests below 1 clamp
// to the first page and requests beyond the end clamp to the last
// valid page, so an overflowing page number never yields an error or
// an empty page.  Empty input produces a single empty page.
func Paginate(items []model.ExternalEvent, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	totalItems := len(items)
	totalPages := (totalItems + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * size
	end := start + size
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}
	return Page{
		Items:      items[start:end],
		Number:     page,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}
