package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogFixture() []Product {
	// Newest first, the order listings come back from storage.
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id, name, price, desc, category string, age int) Product {
		p := product(id, name, price)
		p.Description = desc
		p.Category = category
		p.CreatedAt = base.Add(-time.Duration(age) * time.Hour)
		return p
	}
	return []Product{
		mk("p4", "Tower Heater", "89.99", "quiet ceramic heating", "heaters", 0),
		mk("p3", "Ceiling Fan", "120.00", "large blade span", "fans", 1),
		mk("p2", "Desk Fan", "25.50", "compact USB fan", "fans", 2),
		mk("p1", "Air Purifier", "199.00", "HEPA filtration", "purifiers", 3),
	}
}

func ids(ps []Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestDeriveView_NoFiltersKeepsInputOrder(t *testing.T) {
	in := catalogFixture()
	out := DeriveView(in, "", CategoryAll, SortNewest)
	assert.Equal(t, []string{"p4", "p3", "p2", "p1"}, ids(out))
}

func TestDeriveView_QueryMatchesNameOrDescription(t *testing.T) {
	in := catalogFixture()
	out := DeriveView(in, "fan", CategoryAll, SortName)
	// "Ceiling Fan", "Desk Fan" by name; "compact USB fan" also matches p2.
	assert.Equal(t, []string{"p3", "p2"}, ids(out))

	out = DeriveView(in, "HEPA", CategoryAll, SortNewest)
	assert.Equal(t, []string{"p1"}, ids(out))

	out = DeriveView(in, "hepa", CategoryAll, SortNewest)
	assert.Equal(t, []string{"p1"}, ids(out), "query is case-insensitive")
}

func TestDeriveView_CategoryFilter(t *testing.T) {
	in := catalogFixture()
	out := DeriveView(in, "", "fans", SortNewest)
	assert.Equal(t, []string{"p3", "p2"}, ids(out))

	out = DeriveView(in, "", "nonexistent", SortNewest)
	assert.Empty(t, out)
}

func TestDeriveView_PriceSorts(t *testing.T) {
	in := catalogFixture()
	low := DeriveView(in, "", CategoryAll, SortPriceLow)
	assert.Equal(t, []string{"p2", "p4", "p3", "p1"}, ids(low))

	high := DeriveView(in, "", CategoryAll, SortPriceHigh)
	// For distinct prices, price-high is price-low reversed.
	rev := make([]string, len(low))
	for i, id := range ids(low) {
		rev[len(low)-1-i] = id
	}
	assert.Equal(t, rev, ids(high))
}

func TestDeriveView_NameSortIsCaseInsensitive(t *testing.T) {
	in := catalogFixture()
	out := DeriveView(in, "", CategoryAll, SortName)
	assert.Equal(t, []string{"p1", "p3", "p2", "p4"}, ids(out))
}

func TestDeriveView_UnknownSortKeyBehavesAsNewest(t *testing.T) {
	in := catalogFixture()
	out := DeriveView(in, "", CategoryAll, SortKey("bogus"))
	assert.Equal(t, ids(in), ids(out))
}

func TestDeriveView_IsPureAndIdempotent(t *testing.T) {
	in := catalogFixture()
	before := ids(in)

	first := DeriveView(in, "fan", "fans", SortPriceLow)
	second := DeriveView(in, "fan", "fans", SortPriceLow)
	assert.Equal(t, ids(first), ids(second))

	// Sorting a filtered view never reorders the input.
	assert.Equal(t, before, ids(in))

	// Clearing the filters restores the full set in original order.
	cleared := DeriveView(in, "", CategoryAll, SortNewest)
	assert.Equal(t, before, ids(cleared))
}

func TestDeriveView_EmptyInput(t *testing.T) {
	out := DeriveView(nil, "fan", CategoryAll, SortName)
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestCategories(t *testing.T) {
	in := catalogFixture()
	in = append(in, product("p5", "Uncategorized", "1.00"))
	assert.Equal(t, []string{"all", "heaters", "fans", "purifiers"}, Categories(in))
}
