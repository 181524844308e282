package services

import "travel-backend/models"

// CurrencyView is the currency a price is shown in.
type CurrencyView struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// DefaultCurrency is used when a package has no currency-specific price row.
var DefaultCurrency = CurrencyView{Code: "INR", Symbol: "₹"}

// PriceView is the price block rendered on a package card. When HasDiscount
// is false only DisplayPrice is shown.
type PriceView struct {
	DisplayPrice  float64      `json:"displayPrice"`
	OriginalPrice float64      `json:"originalPrice"`
	Currency      CurrencyView `json:"currency"`
	HasDiscount   bool         `json:"hasDiscount"`
}

// ProjectPrice computes the display price of a package from its first
// currency-specific price row, falling back to the base prices.
//
// Prices are preloaded ordered by id, so "first" is the oldest row.
func ProjectPrice(pkg models.Package) PriceView {
	var row *models.PackagePrice
	if len(pkg.Prices) > 0 {
		row = &pkg.Prices[0]
	}

	view := PriceView{
		DisplayPrice:  pkg.StartingPrice,
		OriginalPrice: pkg.StartingPrice,
		Currency:      DefaultCurrency,
	}

	switch {
	case row != nil && row.DiscountedPrice != nil:
		view.DisplayPrice = *row.DiscountedPrice
	case row != nil:
		view.DisplayPrice = row.Price
	case pkg.DiscountedPrice != nil:
		view.DisplayPrice = *pkg.DiscountedPrice
	}

	if row != nil {
		view.OriginalPrice = row.Price
		if row.Currency.Code != "" {
			view.Currency = CurrencyView{Code: row.Currency.Code, Symbol: row.Currency.Symbol}
		}
	}

	rowDiscount := row != nil && row.DiscountedPrice != nil && *row.DiscountedPrice < row.Price
	view.HasDiscount = rowDiscount || pkg.HasBaseDiscount()
	return view
}
