package pagination_test

import (
	"testing"

	"github.com/kevmogita/duka-pos/pkg/pagination"
	"github.com/stretchr/testify/assert"
)

func TestValidateClampsParams(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{name: "defaults for zero values", page: 0, perPage: 0, wantPage: 1, wantPerPage: 15},
		{name: "negative page", page: -3, perPage: 20, wantPage: 1, wantPerPage: 20},
		{name: "per page over the cap", page: 2, perPage: 500, wantPage: 2, wantPerPage: 100},
		{name: "valid values untouched", page: 3, perPage: 25, wantPage: 3, wantPerPage: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := &pagination.PaginationParams{Page: tt.page, PerPage: tt.perPage}
			params.Validate()

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantPerPage, params.PerPage)
		})
	}
}

func TestOffset(t *testing.T) {
	params := &pagination.PaginationParams{Page: 3, PerPage: 15}

	assert.Equal(t, 30, params.Offset())
}

func TestNewPagination(t *testing.T) {
	// GIVEN: 45 records viewed 15 at a time
	// WHEN: the middle page is described
	pag := pagination.NewPagination(2, 15, 45)

	// THEN: the metadata reflects three pages with neighbors on both sides
	assert.Equal(t, 2, pag.CurrentPage)
	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	// WHEN: the last page is described
	pag = pagination.NewPagination(3, 15, 45)

	// THEN: there is no next page
	assert.False(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	// WHEN: the result set is empty
	pag = pagination.NewPagination(1, 15, 0)

	// THEN: there are no pages to move to
	assert.Equal(t, 0, pag.TotalPages)
	assert.False(t, pag.HasNext)
	assert.False(t, pag.HasPrev)
}
