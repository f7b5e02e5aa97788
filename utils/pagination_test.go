package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       int
		pageSize   int
		totalPages int64
	}{
		{"empty set", 0, 1, 20, 0},
		{"exact fit", 40, 1, 20, 2},
		{"partial last page", 41, 1, 20, 3},
		{"single item", 1, 1, 20, 1},
		{"page size one", 5, 3, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.page, tt.pageSize)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.pageSize, p.PageSize)
			assert.Equal(t, tt.totalPages, p.TotalPages)
		})
	}
}
