package shared

// Default and maximum page sizes applied by every repository filter
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination is the page window embedded in repository filters
type Pagination struct {
	Page     int
	PageSize int
}

// DefaultPagination returns the first page with the default size
func DefaultPagination() Pagination {
	return Pagination{Page: DefaultPage, PageSize: DefaultPageSize}
}

// Offset returns the row offset for the page window
func (p Pagination) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Limit returns the row limit, clamped to the default when unset and to
// the maximum when oversized
func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}

// Sorting names the column and direction a repository query orders by.
// The storage layer whitelists the column name before interpolating it.
type Sorting struct {
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// DefaultSorting orders by creation time, newest first
func DefaultSorting() Sorting {
	return Sorting{SortBy: "created_at", SortOrder: "desc"}
}

// TotalPages returns how many pages a result set of the given total
// spans under the page size
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
