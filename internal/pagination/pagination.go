// Package pagination turns page/limit query strings into skip/limit and
// computes the page metadata returned with every list.
package pagination

import (
	"math"
	"strconv"
)

type Params struct {
	Page  int64
	Limit int64
}

func (p Params) Skip() int64 { return (p.Page - 1) * p.Limit }

// Parse applies the defaults: page falls back to 1 when absent, malformed or
// below 1; limit falls back to def and is clamped to max. Page is capped so
// that Skip never overflows; such a page is simply empty.
func Parse(page, limit string, def, max int64) Params {
	p := Params{Page: 1, Limit: def}
	if n, err := strconv.ParseInt(page, 10, 64); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.ParseInt(limit, 10, 64); err == nil && n >= 1 {
		p.Limit = n
	}
	if max > 0 && p.Limit > max {
		p.Limit = max
	}
	if p.Limit > 0 && p.Page > math.MaxInt64/p.Limit {
		p.Page = math.MaxInt64 / p.Limit
	}
	return p
}

// HasNext reports whether a client reading pages in order has more to fetch.
// skip+results is the number of items seen through this page; it only equals
// total on the last page. Inactive-author filtering happens after skip, so
// the answer is approximate when such posts exist.
func HasNext(total, skip int64, results int) bool {
	return total > 0 && skip+int64(results) < total
}

// Page is one page of items plus the envelope metadata.
type Page[T any] struct {
	Items   []T
	Total   int64
	Page    int64
	HasNext bool
}

func NewPage[T any](items []T, total int64, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:   items,
		Total:   total,
		Page:    p.Page,
		HasNext: HasNext(total, p.Skip(), len(items)),
	}
}
