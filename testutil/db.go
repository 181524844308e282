// Package testutil provides an in-memory SQLite database and catalog
// fixtures shared by the package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"travel-backend/config"
	"travel-backend/models"
)

// NewDB returns a migrated in-memory database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to ":memory:" is a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

func Float(v float64) *float64 { return &v }

func Currency(t *testing.T, db *gorm.DB, code, symbol string) models.Currency {
	t.Helper()
	c := models.Currency{Code: code, Name: code, Symbol: symbol, ExchangeRate: 1, IsActive: true}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func Destination(t *testing.T, db *gorm.DB, slug, name string) models.Destination {
	t.Helper()
	d := models.Destination{Slug: slug, Name: name, IsActive: true}
	require.NoError(t, db.Create(&d).Error)
	return d
}

// PackageOpts describes a fixture package. Zero values get sensible defaults.
type PackageOpts struct {
	Slug            string
	Title           string
	Description     string
	Category        string
	Days            int
	StartingPrice   float64
	DiscountedPrice *float64
	Special         bool
	Inactive        bool
	CreatedAt       time.Time
	Prices          []models.PackagePrice
	DestinationIDs  []uint
}

// Package inserts a package with its price rows and destination links.
func Package(t *testing.T, db *gorm.DB, o PackageOpts) models.Package {
	t.Helper()
	if o.Title == "" {
		o.Title = o.Slug
	}
	if o.Category == "" {
		o.Category = models.CategoryDomestic
	}
	p := models.Package{
		Slug:            o.Slug,
		Title:           o.Title,
		Description:     o.Description,
		Category:        o.Category,
		DurationDays:    o.Days,
		StartingPrice:   o.StartingPrice,
		DiscountedPrice: o.DiscountedPrice,
		IsSpecial:       o.Special,
		IsActive:        !o.Inactive,
		CreatedAt:       o.CreatedAt,
	}
	require.NoError(t, db.Create(&p).Error)
	for _, pp := range o.Prices {
		pp.PackageID = p.ID
		require.NoError(t, db.Omit("Currency").Create(&pp).Error)
	}
	for _, id := range o.DestinationIDs {
		link := models.PackageDestination{PackageID: p.ID, DestinationID: id}
		require.NoError(t, db.Omit("Destination").Create(&link).Error)
	}
	return p
}
