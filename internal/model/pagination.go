package model

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Page struct {
	Page int
	Size int
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Size
}

type PageResult[T any] struct {
	Items      []T
	TotalCount int
	Page
}

func NewPageResult[T any](items []T, total int, page Page) *PageResult[T] {
	return &PageResult[T]{
		Items:      items,
		TotalCount: total,
		Page:       page,
	}
}

func (r *PageResult[T]) PageCount() int {
	if r.Size <= 0 {
		return 0
	}
	return (r.TotalCount + r.Size - 1) / r.Size
}

func (r *PageResult[T]) HasPreviousPage() bool {
	return r.Page.Page > 1
}

func (r *PageResult[T]) HasNextPage() bool {
	return r.Page.Page < r.PageCount()
}
