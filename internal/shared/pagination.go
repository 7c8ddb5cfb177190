package shared

import "math"

// Page sizes offered by list views.
var PageSizes = []int{10, 25, 50}

// DefaultPageSize is used when a requested page size is not one of PageSizes.
const DefaultPageSize = 25

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata. TotalPages is at least 1 so an
// empty listing still renders as "page 1 of 1".
func NewPagination(page, perPage, total int) Pagination {
	perPage = NormalizePageSize(perPage)
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// NormalizePageSize maps unsupported sizes to DefaultPageSize.
func NormalizePageSize(size int) int {
	for _, allowed := range PageSizes {
		if size == allowed {
			return size
		}
	}
	return DefaultPageSize
}

// Paginate returns the items in [(page-1)*size, page*size). Pages past the end
// yield an empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return []T{}
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
