package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	CategoryDomestic      = "DOMESTIC"
	CategoryInternational = "INTERNATIONAL"
)

// Package is a sellable travel itinerary. Child collections are owned and
// removed together with the package.
type Package struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Slug        string `gorm:"uniqueIndex;size:191;not null" json:"slug"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Overview    string `gorm:"type:text" json:"overview"`
	HeroImage   string `gorm:"size:1024" json:"heroImage"`

	GalleryImages datatypes.JSONSlice[string] `json:"galleryImages"`

	DurationDays   int    `gorm:"column:duration_days;index" json:"durationDays"`
	DurationNights int    `gorm:"column:duration_nights" json:"durationNights"`
	DurationLabel  string `gorm:"size:100" json:"durationLabel"`

	Category   string `gorm:"size:32;index;not null" json:"category"`
	IsActive   bool   `gorm:"index" json:"isActive"`
	IsFeatured bool   `gorm:"default:false" json:"isFeatured"`
	IsPopular  bool   `gorm:"default:false" json:"isPopular"`
	IsSpecial  bool   `gorm:"default:false" json:"isSpecial"`

	StartingPrice   float64  `gorm:"type:decimal(12,2);not null;default:0" json:"startingPrice"`
	DiscountedPrice *float64 `gorm:"type:decimal(12,2)" json:"discountedPrice"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Prices       []PackagePrice       `gorm:"foreignKey:PackageID" json:"prices,omitempty"`
	Destinations []PackageDestination `gorm:"foreignKey:PackageID" json:"destinations,omitempty"`
	Itinerary    []ItineraryDay       `gorm:"foreignKey:PackageID" json:"itinerary,omitempty"`
	Hotels       []PackageHotel       `gorm:"foreignKey:PackageID" json:"hotels,omitempty"`
	Meals        []PackageMeal        `gorm:"foreignKey:PackageID" json:"meals,omitempty"`
	Transfers    []PackageTransfer    `gorm:"foreignKey:PackageID" json:"transfers,omitempty"`
	Sightseeing  []PackageSightseeing `gorm:"foreignKey:PackageID" json:"sightseeing,omitempty"`
	Inclusions   []PackageInclusion   `gorm:"foreignKey:PackageID" json:"inclusions,omitempty"`
	Policies     []PackagePolicy      `gorm:"foreignKey:PackageID" json:"policies,omitempty"`
	Activities   []OptionalActivity   `gorm:"foreignKey:PackageID" json:"activities,omitempty"`
}

// HasBaseDiscount reports whether the base discounted price is strictly below
// the starting price. Equal or higher discounted prices count as no discount.
func (p Package) HasBaseDiscount() bool {
	return p.DiscountedPrice != nil && *p.DiscountedPrice < p.StartingPrice
}

// PackagePrice is a currency-specific price override. At most one row per
// (package, currency) pair.
type PackagePrice struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	PackageID       uint     `gorm:"not null;uniqueIndex:idx_package_currency" json:"packageId"`
	CurrencyID      uint     `gorm:"not null;uniqueIndex:idx_package_currency;index" json:"currencyId"`
	Price           float64  `gorm:"type:decimal(12,2);not null" json:"price"`
	DiscountedPrice *float64 `gorm:"type:decimal(12,2)" json:"discountedPrice"`

	Currency Currency `gorm:"foreignKey:CurrencyID;references:ID" json:"currency"`
}

// PackageDestination links a package to a destination (many-to-many).
type PackageDestination struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PackageID     uint      `gorm:"not null;uniqueIndex:idx_package_destination" json:"packageId"`
	DestinationID uint      `gorm:"not null;uniqueIndex:idx_package_destination;index" json:"destinationId"`
	CreatedAt     time.Time `json:"createdAt"`

	Destination Destination `gorm:"foreignKey:DestinationID;references:ID" json:"destination"`
}
