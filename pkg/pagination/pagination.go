package pagination

import "math"

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Pagination describes the page returned to the caller
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// Params represents input parameters for pagination
type Params struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// Default returns default pagination values
func Default() Params {
	return Params{Page: 1, PerPage: defaultPerPage}
}

// Validate clamps parameters into valid ranges
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
}

// Offset is the index of the first item on the page
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// New builds the page descriptor for a total item count
func New(page, perPage int, total int64) *Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// Result is a page of items with its descriptor
type Result[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// Slice cuts one page out of an in-memory list.
func Slice[T any](items []T, p Params) *Result[T] {
	p.Validate()
	total := len(items)
	start := p.Offset()
	if start > total {
		start = total
	}
	end := start + p.PerPage
	if end > total {
		end = total
	}
	page := make([]T, end-start)
	copy(page, items[start:end])
	return &Result[T]{
		Items:      page,
		Pagination: New(p.Page, p.PerPage, int64(total)),
	}
}
