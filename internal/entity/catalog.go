package domain

import (
	"sort"
	"strings"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
)

// CategoryAll disables the category filter.
const CategoryAll = "all"

// DeriveView filters and sorts a product list for display. The input is
// expected pre-sorted by creation time descending, which is what "newest"
// preserves. The input slice is never mutated; unknown sort keys behave as
// "newest".
func DeriveView(products []Product, query, category string, key SortKey) []Product {
	out := make([]Product, 0, len(products))
	q := strings.ToLower(strings.TrimSpace(query))
	for _, p := range products {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		out = append(out, p)
	}

	switch key {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[j].Price.LessThan(out[i].Price) })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	default:
		// newest: keep the input's existing order
	}
	return out
}

// Categories lists the distinct non-empty categories in input order,
// prefixed with the "all" pseudo-category.
func Categories(products []Product) []string {
	out := []string{CategoryAll}
	seen := map[string]bool{}
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
