package services

import (
	"context"

	"gorm.io/gorm"

	"travel-backend/models"
)

type DestinationOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Option is a selectable facet value. Value uses the same syntax the listing
// endpoint parses ("4-6", "15+", "50000-100000").
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type FilterOptions struct {
	Destinations    []DestinationOption `json:"destinations"`
	Categories      []string            `json:"categories"`
	DurationOptions []Option            `json:"durationOptions"`
	PriceRanges     []Option            `json:"priceRanges"`
	PriceRange      PriceBounds         `json:"priceRange"`
}

var durationOptions = []Option{
	{Label: "1-3 Days", Value: "1-3"},
	{Label: "4-6 Days", Value: "4-6"},
	{Label: "7-10 Days", Value: "7-10"},
	{Label: "11-15 Days", Value: "11-15"},
	{Label: "15+ Days", Value: "15+"},
}

// Price buckets are in INR regardless of the viewer's currency.
var priceRangeOptions = []Option{
	{Label: "Under ₹25,000", Value: "0-25000"},
	{Label: "₹25,000 - ₹50,000", Value: "25000-50000"},
	{Label: "₹50,000 - ₹1,00,000", Value: "50000-100000"},
	{Label: "₹1,00,000 - ₹2,00,000", Value: "100000-200000"},
	{Label: "Above ₹2,00,000", Value: "200000+"},
}

type FilterOptionsService struct {
	DB *gorm.DB
}

func NewFilterOptionsService(db *gorm.DB) *FilterOptionsService {
	return &FilterOptionsService{DB: db}
}

// Options derives the listing facets from the active catalog.
func (s *FilterOptionsService) Options(ctx context.Context) (*FilterOptions, error) {
	db := s.DB.WithContext(ctx)
	opts := &FilterOptions{
		Destinations:    []DestinationOption{},
		Categories:      []string{},
		DurationOptions: durationOptions,
		PriceRanges:     priceRangeOptions,
	}

	err := db.Model(&models.Destination{}).
		Select("id", "name", "slug").
		Where("is_active = ?", true).
		Order("name ASC").
		Scan(&opts.Destinations).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Package{}).
		Distinct("category").
		Where("is_active = ?", true).
		Order("category ASC").
		Pluck("category", &opts.Categories).Error
	if err != nil {
		return nil, err
	}

	var bounds struct {
		MinPrice float64
		MaxPrice float64
	}
	err = db.Model(&models.Package{}).
		Select("COALESCE(MIN(starting_price), 0) AS min_price, COALESCE(MAX(starting_price), 0) AS max_price").
		Where("is_active = ?", true).
		Scan(&bounds).Error
	if err != nil {
		return nil, err
	}
	opts.PriceRange = PriceBounds{Min: bounds.MinPrice, Max: bounds.MaxPrice}
	return opts, nil
}
