package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"travel-backend/models"
)

var (
	inr = models.Currency{ID: 1, Code: "INR", Symbol: "₹"}
	usd = models.Currency{ID: 2, Code: "USD", Symbol: "$"}
)

func basePriced(starting float64) models.Package {
	return models.Package{Title: "Base", StartingPrice: starting, IsActive: true}
}

func withPrice(pkg models.Package, cur models.Currency, price float64, discounted *float64) models.Package {
	pkg.Prices = append(pkg.Prices, models.PackagePrice{
		CurrencyID:      cur.ID,
		Currency:        cur,
		Price:           price,
		DiscountedPrice: discounted,
	})
	return pkg
}

func TestMatches_PriceRangeWithoutCurrency(t *testing.T) {
	t.Parallel()

	p := BuildPackagePredicate(PackageFilters{PriceRange: "10000-25000"})

	assert.True(t, Matches(p, basePriced(18000)), "base price in range")
	assert.False(t, Matches(p, basePriced(30000)), "base price out of range")

	// discounted price in range wins even though starting price is out of range
	pkg := withPrice(basePriced(90000), inr, 5000, f(12000))
	assert.True(t, Matches(p, pkg))

	// once price rows exist the base price is ignored
	pkg = withPrice(basePriced(18000), inr, 40000, nil)
	assert.False(t, Matches(p, pkg))
}

func TestMatches_PriceRangeWithCurrency(t *testing.T) {
	t.Parallel()

	p := BuildPackagePredicate(PackageFilters{PriceRange: "100-500", Currency: "USD"})

	assert.False(t, Matches(p, basePriced(300)), "no USD row")
	assert.False(t, Matches(p, withPrice(basePriced(0), inr, 300, nil)), "row in another currency")
	assert.True(t, Matches(p, withPrice(basePriced(0), usd, 300, nil)))
	assert.True(t, Matches(p, withPrice(basePriced(0), usd, 900, f(450))))
	assert.False(t, Matches(p, withPrice(basePriced(0), usd, 900, f(600))))
}

func TestMatches_OpenEndedPrice(t *testing.T) {
	t.Parallel()

	p := BuildPackagePredicate(PackageFilters{PriceRange: "50000+"})

	assert.True(t, Matches(p, basePriced(50000)))
	assert.True(t, Matches(p, basePriced(5_000_000)))
	assert.False(t, Matches(p, basePriced(49999)))
}

func TestMatches_SearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	t.Parallel()

	p := BuildPackagePredicate(PackageFilters{Search: "backwater"})

	assert.True(t, Matches(p, models.Package{Title: "Kerala Backwaters"}))
	assert.True(t, Matches(p, models.Package{Title: "South", Description: "Houseboat on the BACKWATERS"}))
	assert.True(t, Matches(p, models.Package{
		Title: "Slow travel",
		Destinations: []models.PackageDestination{
			{Destination: models.Destination{Slug: "alleppey", Name: "Alleppey Backwater"}},
		},
	}))
	assert.False(t, Matches(p, models.Package{Title: "Goa Beaches"}))
}

func TestMatches_SearchAndPriceBothRequired(t *testing.T) {
	t.Parallel()

	p := BuildPackagePredicate(PackageFilters{Search: "goa", PriceRange: "0-20000"})

	assert.True(t, Matches(p, models.Package{Title: "Goa Escape", StartingPrice: 15000}))
	assert.False(t, Matches(p, models.Package{Title: "Goa Escape", StartingPrice: 25000}))
	assert.False(t, Matches(p, models.Package{Title: "Manali", StartingPrice: 15000}))
}

func TestMatches_DestinationDurationCategory(t *testing.T) {
	t.Parallel()

	pkg := models.Package{
		Title:        "Kashmir",
		Category:     models.CategoryDomestic,
		DurationDays: 5,
		Destinations: []models.PackageDestination{
			{Destination: models.Destination{Slug: "srinagar", Name: "Srinagar"}},
		},
	}

	assert.True(t, Matches(BuildPackagePredicate(PackageFilters{Destination: "srinagar"}), pkg))
	assert.False(t, Matches(BuildPackagePredicate(PackageFilters{Destination: "goa"}), pkg))
	assert.True(t, Matches(BuildPackagePredicate(PackageFilters{Duration: "4-6"}), pkg))
	assert.False(t, Matches(BuildPackagePredicate(PackageFilters{Duration: "7-10"}), pkg))
	assert.True(t, Matches(BuildPackagePredicate(PackageFilters{Category: "domestic"}), pkg))
	assert.False(t, Matches(BuildPackagePredicate(PackageFilters{Category: "international"}), pkg))
	assert.False(t, Matches(BuildPackagePredicate(PackageFilters{Special: "true"}), pkg))
}
