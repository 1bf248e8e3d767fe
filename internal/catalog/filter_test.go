package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func TestParseFilter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		search   string
		category string
		minPrice string
		maxPrice string
		sortBy   string
		want     func(t *testing.T, f Filter)
	}{
		{
			name: "empty params give zero filter",
			want: func(t *testing.T, f Filter) {
				assert.Equal(t, "", f.Search)
				assert.Equal(t, "", f.Category)
				assert.Nil(t, f.MinPrice)
				assert.Nil(t, f.MaxPrice)
				assert.Equal(t, SortNewest, f.Sort)
			},
		},
		{
			name:   "search is trimmed",
			search: "  cycle  ",
			want: func(t *testing.T, f Filter) {
				assert.Equal(t, "cycle", f.Search)
			},
		},
		{
			name:     "valid prices parse",
			minPrice: "10.5",
			maxPrice: "200",
			want: func(t *testing.T, f Filter) {
				require.NotNil(t, f.MinPrice)
				require.NotNil(t, f.MaxPrice)
				assert.Equal(t, 10.5, *f.MinPrice)
				assert.Equal(t, 200.0, *f.MaxPrice)
			},
		},
		{
			name:     "garbage prices are ignored",
			minPrice: "cheap",
			maxPrice: "",
			want: func(t *testing.T, f Filter) {
				assert.Nil(t, f.MinPrice)
				assert.Nil(t, f.MaxPrice)
			},
		},
		{
			name:   "known sort directives pass through",
			sortBy: SortPriceHigh,
			want: func(t *testing.T, f Filter) {
				assert.Equal(t, SortPriceHigh, f.Sort)
			},
		},
		{
			name:   "unknown sort falls back to newest",
			sortBy: "alphabetical",
			want: func(t *testing.T, f Filter) {
				assert.Equal(t, SortNewest, f.Sort)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := ParseFilter(tc.search, tc.category, tc.minPrice, tc.maxPrice, tc.sortBy)
			tc.want(t, f)
		})
	}
}

func TestOrderClause(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "created_at desc", Filter{}.OrderClause())
	assert.Equal(t, "price asc", Filter{Sort: SortPriceLow}.OrderClause())
	assert.Equal(t, "price desc", Filter{Sort: SortPriceHigh}.OrderClause())
}

func TestIsStandardCategory(t *testing.T) {
	t.Parallel()

	for _, c := range StandardCategories {
		assert.True(t, IsStandardCategory(c), c)
	}
	assert.False(t, IsStandardCategory("Custom"))
	assert.False(t, IsStandardCategory(OthersCategory))
	assert.False(t, IsStandardCategory("books & notes"))
}

type scopedItem struct {
	ID          string
	Title       string
	Description string
	Category    string
	Price       float64
}

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func buildSQL(t *testing.T, f Filter) (string, []interface{}) {
	t.Helper()
	db := dryRunDB(t)
	var items []scopedItem
	stmt := f.Scope(db.Model(&scopedItem{})).Find(&items).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestScopeSearch(t *testing.T) {
	t.Parallel()

	sql, vars := buildSQL(t, Filter{Search: "phone"})
	assert.Contains(t, sql, "title ILIKE ? OR description ILIKE ?")
	assert.Contains(t, vars, "%phone%")
}

func TestScopeCategoryExact(t *testing.T) {
	t.Parallel()

	sql, vars := buildSQL(t, Filter{Category: "Cycles"})
	assert.Contains(t, sql, "category = ?")
	assert.NotContains(t, sql, "NOT IN")
	assert.Contains(t, vars, "Cycles")
}

func TestScopeCategoryOthersIsComplement(t *testing.T) {
	t.Parallel()

	sql, vars := buildSQL(t, Filter{Category: OthersCategory})
	assert.Contains(t, sql, "category NOT IN")
	for _, c := range StandardCategories {
		assert.Contains(t, vars, c)
	}
	// The sentinel itself never reaches the query values.
	assert.NotContains(t, vars, OthersCategory)
}

func TestScopePriceBoundsInclusive(t *testing.T) {
	t.Parallel()

	min, max := 50.0, 150.0
	sql, vars := buildSQL(t, Filter{MinPrice: &min, MaxPrice: &max})
	assert.Contains(t, sql, "price >= ?")
	assert.Contains(t, sql, "price <= ?")
	assert.Contains(t, vars, 50.0)
	assert.Contains(t, vars, 150.0)
}

func TestScopeFiltersCompose(t *testing.T) {
	t.Parallel()

	min := 10.0
	sql, _ := buildSQL(t, Filter{Search: "lamp", Category: "Hostel Essentials", MinPrice: &min, Sort: SortPriceLow})
	assert.Contains(t, sql, "ILIKE")
	assert.Contains(t, sql, "category = ?")
	assert.Contains(t, sql, "price >= ?")
	assert.Contains(t, sql, "ORDER BY price asc")
}

func TestScopeDefaultOrderIsNewestFirst(t *testing.T) {
	t.Parallel()

	sql, _ := buildSQL(t, Filter{})
	assert.Contains(t, sql, "ORDER BY created_at desc")
}
