package listview

import "roomboard/internal/usecase/queries"

// Pagination bounds are enforced when the user navigates. A shrinking result
// updates TotalPages but leaves CurrentPage alone.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
}

func NewPagination() Pagination {
	return Pagination{CurrentPage: 1, TotalPages: 1, PageSize: queries.PageSize}
}

func (p Pagination) SetPage(page int) Pagination {
	p.CurrentPage = queries.ClampPage(page, p.TotalPages)
	return p
}

func (p Pagination) Next() Pagination {
	return p.SetPage(p.CurrentPage + 1)
}

func (p Pagination) Previous() Pagination {
	return p.SetPage(p.CurrentPage - 1)
}

func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

func (p Pagination) HasPrevious() bool {
	return p.CurrentPage > 1
}

func (p Pagination) WithTotalPages(totalPages int) Pagination {
	if totalPages < 1 {
		totalPages = 1
	}
	p.TotalPages = totalPages
	return p
}

// Reset returns to the first page; used when a new search term is committed.
func (p Pagination) Reset() Pagination {
	p.CurrentPage = 1
	return p
}
