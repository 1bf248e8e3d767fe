// Package catalog implements the listing query engine: free-text search,
// category and price filters, and sort directives composed into a single
// database query.
package catalog

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// StandardCategories is the fixed set of first-class listing categories.
// Anything outside this set is bucketed under "Others" at query time; the
// bucket is computed, never stored.
var StandardCategories = []string{
	"Books & Notes",
	"Electronics",
	"Hostel Essentials",
	"Cycles",
	"Stationery",
}

// OthersCategory is the sentinel selecting the complement of the standard set.
const OthersCategory = "Others"

// Sort directives accepted by the query engine.
const (
	SortNewest    = ""
	SortPriceLow  = "priceLow"
	SortPriceHigh = "priceHigh"
)

// Filter is a parsed listing query. Zero values mean "not filtered".
type Filter struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
}

// ParseFilter builds a Filter from raw query parameters. Unparseable price
// bounds and unknown sort directives are ignored rather than rejected, so a
// malformed parameter degrades to the unfiltered default.
func ParseFilter(search, category, minPrice, maxPrice, sortBy string) Filter {
	f := Filter{
		Search:   strings.TrimSpace(search),
		Category: strings.TrimSpace(category),
	}

	if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
		f.MaxPrice = &v
	}

	switch sortBy {
	case SortPriceLow, SortPriceHigh:
		f.Sort = sortBy
	}

	return f
}

// Scope applies the filter and sort to an item query. All active filters
// combine with AND; sort and filters compose independently.
func (f Filter) Scope(query *gorm.DB) *gorm.DB {
	if f.Search != "" {
		q := "%" + f.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", q, q)
	}

	if f.Category != "" {
		if f.Category == OthersCategory {
			query = query.Where("category NOT IN ?", StandardCategories)
		} else {
			query = query.Where("category = ?", f.Category)
		}
	}

	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}

	return query.Order(f.OrderClause())
}

// OrderClause maps the sort directive to its SQL ordering.
func (f Filter) OrderClause() string {
	switch f.Sort {
	case SortPriceLow:
		return "price asc"
	case SortPriceHigh:
		return "price desc"
	default:
		return "created_at desc"
	}
}

// IsStandardCategory reports whether the category belongs to the fixed set.
func IsStandardCategory(category string) bool {
	for _, c := range StandardCategories {
		if c == category {
			return true
		}
	}
	return false
}
