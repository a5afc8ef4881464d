package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{name: "first page", page: 1, size: 20, wantOffset: 0, wantLimit: 20},
		{name: "third page", page: 3, size: 10, wantOffset: 20, wantLimit: 10},
		{name: "zero page clamps to first", page: 0, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "oversized page size falls back to default", page: 2, size: 500, wantOffset: 20, wantLimit: DefaultPageSize},
		{name: "zero size falls back to default", page: 2, size: 0, wantOffset: 20, wantLimit: DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 20)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 20, info.PageSize)
	assert.Equal(t, int64(45), info.TotalItems)

	// Empty result sets still report one page.
	empty := NewPaginationInfo(0, 1, 20)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Equal(t, int64(0), empty.TotalItems)

	// Requesting past the end clamps to the last page.
	clamped := NewPaginationInfo(10, 5, 20)
	assert.Equal(t, 1, clamped.CurrentPage)
}
