package repository

import "math"

// PageSize is the fixed number of results per page on every list endpoint.
const PageSize = 5

// MaxPage is the highest page whose offset still fits in an int.
const MaxPage = math.MaxInt/PageSize + 1

// Page is a 1-based page number.
type Page struct {
	Number int
}

func NewPage(number int) Page {
	if number < 1 {
		number = 1
	}
	if number > MaxPage {
		number = MaxPage
	}
	return Page{Number: number}
}

func (p Page) Limit() int { return PageSize }

func (p Page) Offset() int {
	switch {
	case p.Number < 1:
		return 0
	case p.Number > MaxPage:
		return (MaxPage - 1) * PageSize
	}
	return (p.Number - 1) * PageSize
}

type PageResult[T any] struct {
	Count   int  `json:"count"`
	Page    int  `json:"page"`
	HasNext bool `json:"has_next"`
	Results []T  `json:"results"`
}

func NewPageResult[T any](page Page, count int, results []T) PageResult[T] {
	if results == nil {
		results = []T{}
	}
	return PageResult[T]{
		Count:   count,
		Page:    NewPage(page.Number).Number,
		HasNext: page.Offset()+len(results) < count,
		Results: results,
	}
}

// Slice applies page to an in-memory result set.
func Slice[T any](all []T, page Page) PageResult[T] {
	start := page.Offset()
	if start < 0 || start > len(all) {
		start = len(all)
	}
	end := len(all)
	if start+page.Limit() <= len(all) {
		end = start + page.Limit()
	}
	return NewPageResult(page, len(all), append([]T(nil), all[start:end]...))
}
