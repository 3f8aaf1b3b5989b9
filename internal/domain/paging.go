package domain

import "math"

const (
	DefaultPage     = 0
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Page[T any] struct {
	Items  []T
	Number int
	Size   int
	Total  int64
}

func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

func (p *Page[T]) Paging() *Paging {
	return &Paging{
		Size:        p.Size,
		TotalPage:   p.TotalPages(),
		CurrentPage: p.Number,
	}
}

type Paging struct {
	Size        int `json:"size"`
	TotalPage   int `json:"totalPage"`
	CurrentPage int `json:"currentPage"`
}

// ValidatePage checks a 0-indexed page request.
func ValidatePage(page, size int) error {
	if page < 0 {
		return NewValidationError("page must be greater than or equal to 0")
	}
	if size < 1 || size > MaxPageSize {
		return NewValidationError("size must be between 1 and %d", MaxPageSize)
	}
	if page > (math.MaxInt-size)/size {
		return NewValidationError("page is out of range")
	}
	return nil
}

// Offset is the row offset of a validated page.
func Offset(page, size int) int {
	return page * size
}
