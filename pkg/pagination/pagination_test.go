package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kamaug/opshub-api/pkg/pagination"
)

func TestPaginationParams_Validate(t *testing.T) {
	p := &pagination.PaginationParams{Page: 0, PerPage: 0}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)

	p = &pagination.PaginationParams{Page: 3, PerPage: 500}
	p.Validate()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.PerPage, "per_page is capped at 100")
}

func TestPaginationParams_Offset(t *testing.T) {
	p := &pagination.PaginationParams{Page: 4, PerPage: 15}
	assert.Equal(t, 45, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := pagination.NewPagination(2, 15, 31)
	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	pag = pagination.NewPagination(1, 15, 10)
	assert.Equal(t, 1, pag.TotalPages)
	assert.False(t, pag.HasNext)
	assert.False(t, pag.HasPrev)
}
