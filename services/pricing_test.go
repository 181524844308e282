package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"travel-backend/models"
	"travel-backend/testutil"
)

var (
	usd = models.Currency{ID: 2, Code: "USD", Symbol: "$"}
	eur = models.Currency{ID: 3, Code: "EUR", Symbol: "€"}
)

func TestProjectPrice_BaseDiscountWithoutPriceRows(t *testing.T) {
	t.Parallel()

	view := ProjectPrice(models.Package{StartingPrice: 20000, DiscountedPrice: testutil.Float(18000)})

	assert.True(t, view.HasDiscount)
	assert.Equal(t, 18000.0, view.DisplayPrice)
	assert.Equal(t, 20000.0, view.OriginalPrice)
	assert.Equal(t, DefaultCurrency, view.Currency)
}

func TestProjectPrice_SinglePriceRowWithoutDiscount(t *testing.T) {
	t.Parallel()

	pkg := models.Package{
		StartingPrice: 90000,
		Prices:        []models.PackagePrice{{Price: 1000, CurrencyID: usd.ID, Currency: usd}},
	}
	view := ProjectPrice(pkg)

	assert.False(t, view.HasDiscount)
	assert.Equal(t, 1000.0, view.DisplayPrice)
	assert.Equal(t, 1000.0, view.OriginalPrice)
	assert.Equal(t, CurrencyView{Code: "USD", Symbol: "$"}, view.Currency)
}

func TestProjectPrice_RowDiscount(t *testing.T) {
	t.Parallel()

	pkg := models.Package{
		Prices: []models.PackagePrice{{Price: 1000, DiscountedPrice: testutil.Float(800), Currency: usd}},
	}
	view := ProjectPrice(pkg)

	assert.True(t, view.HasDiscount)
	assert.Equal(t, 800.0, view.DisplayPrice)
	assert.Equal(t, 1000.0, view.OriginalPrice)
}

func TestProjectPrice_DiscountNotBelowPriceIsNoDiscount(t *testing.T) {
	t.Parallel()

	equal := ProjectPrice(models.Package{StartingPrice: 5000, DiscountedPrice: testutil.Float(5000)})
	assert.False(t, equal.HasDiscount)
	assert.Equal(t, 5000.0, equal.DisplayPrice)

	higher := ProjectPrice(models.Package{
		Prices: []models.PackagePrice{{Price: 1000, DiscountedPrice: testutil.Float(1200), Currency: usd}},
	})
	assert.False(t, higher.HasDiscount)
	assert.Equal(t, 1200.0, higher.DisplayPrice)
}

func TestProjectPrice_BaseDiscountStillCountsWithPriceRow(t *testing.T) {
	t.Parallel()

	pkg := models.Package{
		StartingPrice:   20000,
		DiscountedPrice: testutil.Float(15000),
		Prices:          []models.PackagePrice{{Price: 300, Currency: usd}},
	}
	view := ProjectPrice(pkg)

	assert.True(t, view.HasDiscount)
	assert.Equal(t, 300.0, view.DisplayPrice)
	assert.Equal(t, 300.0, view.OriginalPrice)
}

// The first loaded price row wins even when another currency is listed
// later. This documents the current behaviour; a viewer-currency aware
// selection would change the expected currency here.
func TestProjectPrice_UsesFirstPriceRow(t *testing.T) {
	t.Parallel()

	pkg := models.Package{
		Prices: []models.PackagePrice{
			{Price: 450, Currency: eur},
			{Price: 500, Currency: usd},
		},
	}
	view := ProjectPrice(pkg)

	assert.Equal(t, "EUR", view.Currency.Code)
	assert.Equal(t, 450.0, view.DisplayPrice)
}

func TestProjectPrice_RowWithoutLoadedCurrencyFallsBackToDefault(t *testing.T) {
	t.Parallel()

	view := ProjectPrice(models.Package{Prices: []models.PackagePrice{{Price: 700, CurrencyID: 9}}})
	assert.Equal(t, DefaultCurrency, view.Currency)
	assert.Equal(t, 700.0, view.DisplayPrice)
}
