// Package pagination pages list queries and carries the paging state the
// list pages link with.
package pagination

import (
	"gorm.io/gorm"
)

// DefaultPageSize is used when the query string does not set page_size.
const DefaultPageSize = 20

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Defaults fills in default values when page or page_size are not provided.
func (p *PageRequest) Defaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse is one page of items plus what is needed to link to its
// neighbours.
type PageResponse[T any] struct {
	Data       []T
	Page       int
	PageSize   int
	TotalItems int64
	TotalPages int
}

// NewPageResponse creates a PageResponse from the given data and total
// count. An empty result still has one (empty) page.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	totalPages := 1
	if pageSize > 0 && totalItems > 0 {
		totalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// HasPrev reports whether a page before this one exists.
func (p PageResponse[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a page after this one exists.
func (p PageResponse[T]) HasNext() bool { return p.Page < p.TotalPages }

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
