package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"travel-backend/models"
)

// PackageFilters are the raw listing query parameters. Every field is
// optional; empty and "all" both mean "no constraint".
type PackageFilters struct {
	Category    string `form:"category" json:"category"`
	Special     string `form:"special" json:"special"`
	Destination string `form:"destination" json:"destination"`
	Duration    string `form:"duration" json:"duration"`
	Search      string `form:"search" json:"search"`
	PriceRange  string `form:"priceRange" json:"priceRange"`
	Currency    string `form:"currency" json:"currency"`
	// Month is accepted from the listing URL but does not narrow results.
	Month string `form:"month" json:"month"`
}

func FiltersFromValues(v url.Values) PackageFilters {
	return PackageFilters{
		Category:    v.Get("category"),
		Special:     v.Get("special"),
		Destination: v.Get("destination"),
		Duration:    v.Get("duration"),
		Search:      v.Get("search"),
		PriceRange:  v.Get("priceRange"),
		Currency:    v.Get("currency"),
		Month:       v.Get("month"),
	}
}

// BuildPackagePredicate translates listing filters into a predicate tree.
// It performs no I/O. Independent OR groups (search, price range) are
// combined under a single top-level AND.
func BuildPackagePredicate(f PackageFilters) Predicate {
	var parts []Predicate

	if category := present(f.Category); category != "" {
		parts = append(parts, Eq(FieldCategory, normalizeCategory(category)))
	}

	if strings.EqualFold(strings.TrimSpace(f.Special), "true") {
		parts = append(parts, Eq(FieldIsSpecial, true))
	}

	if slug := present(f.Destination); slug != "" {
		parts = append(parts, Some(RelDestinations, Eq(FieldDestinationSlug, slug)))
	}

	if r, ok := ParseRange(f.Duration); ok {
		parts = append(parts, r.On(FieldDurationDays))
	}

	if term := present(f.Search); term != "" {
		parts = append(parts, Or(
			Contains(FieldTitle, term),
			Contains(FieldDescription, term),
			Some(RelDestinations, Contains(FieldDestinationName, term)),
		))
	}

	if r, ok := ParseRange(f.PriceRange); ok {
		parts = append(parts, priceRangePredicate(r, present(f.Currency)))
	}

	return And(parts...)
}

// priceRangePredicate matches a price row on its price or, when set, its
// discounted price. With a specific currency only rows in that currency
// count; otherwise packages without any price rows fall back to their base
// starting price.
func priceRangePredicate(r Range, currency string) Predicate {
	rowInRange := Or(
		r.On(FieldPrice),
		And(NotNull(FieldDiscountedPrice), r.On(FieldDiscountedPrice)),
	)

	if currency != "" {
		return Some(RelPrices, And(
			Eq(FieldCurrencyCode, strings.ToUpper(currency)),
			rowInRange,
		))
	}

	return Or(
		And(None(RelPrices), r.On(FieldStartingPrice)),
		Some(RelPrices, rowInRange),
	)
}

// Range is an inclusive numeric interval; a nil bound is open.
type Range struct {
	Min *float64
	Max *float64
}

// ParseRange accepts "min-max", "min-" and "min+". A bound that does not
// parse as a finite number is treated as absent; ok is false when neither bound
// survives.
func ParseRange(raw string) (Range, bool) {
	s := present(raw)
	if s == "" {
		return Range{}, false
	}

	var lo, hi string
	switch {
	case strings.HasSuffix(s, "+"):
		lo = strings.TrimSuffix(s, "+")
	case strings.Contains(s, "-"):
		lo, hi, _ = strings.Cut(s, "-")
	default:
		lo = s
	}

	r := Range{Min: parseBound(lo), Max: parseBound(hi)}
	if r.Min == nil && r.Max == nil {
		return Range{}, false
	}
	return r, true
}

// On expresses the range as comparisons on field.
func (r Range) On(field Field) Predicate {
	var parts []Predicate
	if r.Min != nil {
		parts = append(parts, Gte(field, *r.Min))
	}
	if r.Max != nil {
		parts = append(parts, Lte(field, *r.Max))
	}
	return And(parts...)
}

func parseBound(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func present(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}

func normalizeCategory(s string) string {
	switch strings.ToLower(s) {
	case "domestic":
		return models.CategoryDomestic
	case "international":
		return models.CategoryInternational
	}
	return strings.ToUpper(s)
}
