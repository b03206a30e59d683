// Package listview computes the visible page of a collection from filter,
// search, sort and pagination state. Everything here is pure: no storage,
// no network, no clamping of out-of-range pages (callers reset to page 1
// whenever their filter inputs change).
package listview

import (
	"sort"
	"strings"
	"time"
)

// Item is anything the engine can filter and sort. The three listable
// resources (articles, formations, portfolio projects) satisfy it.
type Item interface {
	ListTitle() string
	ListExcerpt() string
	ListCategories() []string
	ListTechnologies() []string
	ListDate() time.Time
}

// Filters is the filter/search/sort state applied to a collection. Empty
// selections and an empty search match everything.
type Filters struct {
	Categories   []string
	Technologies []string
	Search       string
	Sort         string // "newest" (default) or "oldest"
}

// Page is one visible slice of a filtered collection. TotalPages is 0 when
// nothing matches; callers render an explicit no-results state then.
type Page[T Item] struct {
	Items      []T
	Total      int
	TotalPages int
}

// VisiblePage filters, sorts and paginates items. Pages are 1-based; a page
// beyond TotalPages yields an empty slice (the engine does not clamp).
func VisiblePage[T Item](items []T, f Filters, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		return Page[T]{Items: []T{}}
	}

	filtered := make([]T, 0, len(items))
	query := strings.ToLower(strings.TrimSpace(f.Search))
	for _, item := range items {
		if !matchesSet(f.Categories, item.ListCategories()) {
			continue
		}
		if !matchesSet(f.Technologies, item.ListTechnologies()) {
			continue
		}
		if !matchesSearch(query, item) {
			continue
		}
		filtered = append(filtered, item)
	}

	// Stable sort: ties keep original order.
	oldest := f.Sort == "oldest"
	sort.SliceStable(filtered, func(i, j int) bool {
		if oldest {
			return filtered[i].ListDate().Before(filtered[j].ListDate())
		}
		return filtered[i].ListDate().After(filtered[j].ListDate())
	})

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start < 0 || start >= total {
		return Page[T]{Items: []T{}, Total: total, TotalPages: totalPages}
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return Page[T]{Items: filtered[start:end], Total: total, TotalPages: totalPages}
}

// matchesSet: an empty selection matches everything, otherwise the item's
// values must intersect the selection.
func matchesSet(selected, values []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, want := range selected {
		for _, have := range values {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}

// matchesSearch: case-insensitive substring match against title and excerpt.
func matchesSearch[T Item](query string, item T) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.ListTitle()), query) {
		return true
	}
	return strings.Contains(strings.ToLower(item.ListExcerpt()), query)
}
