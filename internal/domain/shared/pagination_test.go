package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationOffset(t *testing.T) {
	tests := []struct {
		name string
		p    Pagination
		want int
	}{
		{"first page", Pagination{Page: 1, PageSize: 20}, 0},
		{"third page", Pagination{Page: 3, PageSize: 20}, 40},
		{"zero page", Pagination{Page: 0, PageSize: 20}, 0},
		{"negative page", Pagination{Page: -2, PageSize: 20}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Offset())
		})
	}
}

func TestPaginationLimit(t *testing.T) {
	tests := []struct {
		name string
		p    Pagination
		want int
	}{
		{"normal", Pagination{Page: 1, PageSize: 50}, 50},
		{"unset falls back to default", Pagination{Page: 1}, DefaultPageSize},
		{"negative falls back to default", Pagination{Page: 1, PageSize: -5}, DefaultPageSize},
		{"oversized clamps to max", Pagination{Page: 1, PageSize: 5000}, MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Limit())
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		pageSize int
		want     int
	}{
		{"exact multiple", 40, 20, 2},
		{"remainder adds a page", 41, 20, 3},
		{"empty result", 0, 20, 0},
		{"zero page size", 41, 0, 0},
		{"single short page", 5, 20, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.pageSize))
		})
	}
}

func TestDefaultPagination(t *testing.T) {
	p := DefaultPagination()
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	s := DefaultSorting()
	assert.Equal(t, "created_at", s.SortBy)
	assert.Equal(t, "desc", s.SortOrder)
}
