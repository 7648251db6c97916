// Package pagination implements offset/limit pages for list endpoints.
package pagination

import "math"

const (
	DefaultPage = 1
	DefaultSize = 50
	MaxSize     = 100

	// MaxPage keeps (Page-1)*MaxSize within an int.
	MaxPage = math.MaxInt / MaxSize
)

// Params are the page and size query parameters of a list request.
type Params struct {
	Page int `form:"page"`
	Size int `form:"size"`
}

// Normalize applies defaults and clamps Page to MaxPage and Size to MaxSize.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size < 1 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Offset is the number of rows skipped before this page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Size
}

// Limit is the maximum number of rows of this page.
func (p Params) Limit() int {
	return p.Normalize().Size
}

// Page is one page of results plus the totals needed to walk the rest.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int   `json:"pages"`
}

// New builds a Page from the rows of one page and the total row count.
func New[T any](items []T, total int64, p Params) Page[T] {
	n := p.Normalize()
	if items == nil {
		items = []T{}
	}
	pages := int((total + int64(n.Size) - 1) / int64(n.Size))
	return Page[T]{Items: items, Total: total, Page: n.Page, Size: n.Size, Pages: pages}
}

// Map converts the items of a page, keeping the totals.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return Page[U]{Items: out, Total: p.Total, Page: p.Page, Size: p.Size, Pages: p.Pages}
}
