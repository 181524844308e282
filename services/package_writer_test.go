package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"travel-backend/models"
	"travel-backend/testutil"
)

func boolPtr(v bool) *bool { return &v }

func fullPayload(title string, currencyID, destinationID uint) PackagePayload {
	return PackagePayload{
		Title:          title,
		Description:    "Houseboats and hill stations",
		DurationDays:   5,
		DurationNights: 4,
		Category:       "domestic",
		StartingPrice:  25000,
		GalleryImages:  []string{"/uploads/packages/a.jpg"},
		Prices:         []PricePayload{{CurrencyID: currencyID, Price: 300, DiscountedPrice: testutil.Float(280)}},
		DestinationIDs: []uint{destinationID, destinationID},
		Itinerary: []models.ItineraryDay{
			{Title: "Arrive in Kochi"},
			{Title: "Munnar"},
		},
		Hotels:      []models.PackageHotel{{City: "Munnar", HotelName: "Tea Valley", StarRating: 4, Nights: 2}},
		Meals:       []models.PackageMeal{{DayNumber: 1, MealType: "Dinner"}},
		Transfers:   []models.PackageTransfer{{DayNumber: 1, FromLocation: "COK", ToLocation: "Munnar", Mode: "Car"}},
		Sightseeing: []models.PackageSightseeing{{DayNumber: 2, Title: "Tea museum"}},
		Inclusions: []models.PackageInclusion{
			{Type: "inclusion", Text: "Breakfast"},
			{Type: "EXCLUSION", Text: "Flights"},
		},
		Policies: []models.PackagePolicy{
			{Type: "cancellation", Title: "30 days", Content: "Full refund"},
			{Type: "payment", Title: "Deposit", Content: "25% upfront"},
			{Type: "cancellation", Title: "7 days", Content: "No refund"},
		},
		Activities: []models.OptionalActivity{{Name: "Kathakali show", Price: testutil.Float(800)}},
	}
}

func childCounts(t *testing.T, db *gorm.DB, packageID uint) map[string]int64 {
	t.Helper()
	out := map[string]int64{}
	for _, model := range packageChildren {
		var n int64
		require.NoError(t, db.Model(model).Where("package_id = ?", packageID).Count(&n).Error)
		out[fmt.Sprintf("%T", model)] = n
	}
	return out
}

func TestPackageWriter_CreateWithChildren(t *testing.T) {
	db := testutil.NewDB(t)
	w := NewPackageWriter(db)
	inr := testutil.Currency(t, db, "INR", "₹")
	kerala := testutil.Destination(t, db, "kerala", "Kerala")

	pkg, err := w.Create(context.Background(), fullPayload("Kerala Backwaters", inr.ID, kerala.ID))
	require.NoError(t, err)

	assert.Equal(t, "kerala-backwaters", pkg.Slug)
	assert.Equal(t, models.CategoryDomestic, pkg.Category)
	assert.True(t, pkg.IsActive)
	require.Len(t, pkg.Prices, 1)
	assert.Equal(t, "INR", pkg.Prices[0].Currency.Code)
	require.Len(t, pkg.Destinations, 1, "duplicate destination ids collapse")
	require.Len(t, pkg.Itinerary, 2)
	assert.Equal(t, 1, pkg.Itinerary[0].DayNumber)
	assert.Equal(t, 2, pkg.Itinerary[1].DayNumber)
	assert.Equal(t, models.InclusionTypeInclusion, pkg.Inclusions[0].Type)
	assert.Equal(t, []string{"/uploads/packages/a.jpg"}, []string(pkg.GalleryImages))
	assert.Len(t, pkg.Policies, 3)
	assert.Len(t, pkg.Activities, 1)
}

func TestPackageWriter_CreateValidation(t *testing.T) {
	db := testutil.NewDB(t)
	w := NewPackageWriter(db)
	inr := testutil.Currency(t, db, "INR", "₹")
	ctx := context.Background()

	tests := []struct {
		name string
		in   PackagePayload
	}{
		{"missing title", PackagePayload{Title: "  "}},
		{"bad slug", PackagePayload{Title: "Goa", Slug: "goa beach"}},
		{"bad category", PackagePayload{Title: "Goa", Category: "space"}},
		{"negative price", PackagePayload{Title: "Goa", StartingPrice: -1}},
		{"negative duration", PackagePayload{Title: "Goa", DurationDays: -2}},
		{"unknown currency", PackagePayload{Title: "Goa", Prices: []PricePayload{{CurrencyCode: "XYZ", Price: 1}}}},
		{"duplicate currency", PackagePayload{Title: "Goa", Prices: []PricePayload{
			{CurrencyID: inr.ID, Price: 1}, {CurrencyCode: "inr", Price: 2},
		}}},
		{"unknown destination", PackagePayload{Title: "Goa", DestinationIDs: []uint{999}}},
		{"bad inclusion type", PackagePayload{Title: "Goa", Inclusions: []models.PackageInclusion{{Type: "MAYBE", Text: "x"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.Create(ctx, tt.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Package{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPackageWriter_CreateDuplicateSlug(t *testing.T) {
	db := testutil.NewDB(t)
	w := NewPackageWriter(db)
	testutil.Package(t, db, testutil.PackageOpts{Slug: "goa"})

	_, err := w.Create(context.Background(), PackagePayload{Title: "Goa"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPackageWriter_UpdateSlugTakenLeavesPackageUntouched(t *testing.T) {
	db := testutil.NewDB(t)
	w := NewPackageWriter(db)
	inr := testutil.Currency(t, db, "INR", "₹")
	kerala := testutil.Destination(t, db, "kerala", "Kerala")
	ctx := context.Background()

	a, err := w.Create(ctx, fullPayload("Package A", inr.ID, kerala.ID))
	require.NoError(t, err)
	_, err = w.Create(ctx, PackagePayload{Title: "Package B"})
	require.NoError(t, err)
	before := childCounts(t, db, a.ID)

	in := fullPayload("Renamed A", inr.ID, kerala.ID)
	in.Slug = "package-b"
	in.Itinerary = nil
	_, err = w.Update(ctx, a.ID, in)
	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrDuplicate)

	var reloaded models.Package
	require.NoError(t, db.First(&reloaded, a.ID).Error)
	assert.Equal(t, "package-a", reloaded.Slug)
	assert.Equal(t, "Package A", reloaded.Title)
	assert.Equal(t, before, childCounts(t, db, a.ID))
}

func TestPackageWriter_UpdateKeepsOwnSlug(t *testing.T) {
	db := testutil.NewDB(t)
	w := NewPackageWriter(db)
	ctx := context.Background()

	a, err := w.Create(ctx, PackagePayload{Title: "Goa", Slug: "goa"})
	require.NoError(t, err)

	updated, err := w.Update(ctx, a.ID, PackagePayload{Title: "Goa Deluxe", Slug: "goa"})
	require.NoError(t, err)
	assert.Equal(t, "goa", updated.Slug)
	assert.Equal(t, "Goa Deluxe", updated.Title)
}

func TestPackageWriter_UpdateReplacesCollections(t *testing.T) {
	db := testutil.NewDB(t)
	w := NewPackageWriter(db)
	inr := testutil.Currency(t, db, "INR", "₹")
	usd := testutil.Currency(t, db, "USD", "$")
	kerala := testutil.Destination(t, db, "kerala", "Kerala")
	goa := testutil.Destination(t, db, "goa", "Goa")
	ctx := context.Background()

	created, err := w.Create(ctx, fullPayload("Kerala Backwaters", inr.ID, kerala.ID))
	require.NoError(t, err)

	in := PackagePayload{
		Title:           "Kerala and Goa",
		Slug:            created.Slug,
		Category:        "INTERNATIONAL",
		StartingPrice:   40000,
		DiscountedPrice: testutil.Float(38000),
		IsActive:        boolPtr(false),
		Prices:          []PricePayload{{CurrencyCode: "usd", Price: 500}},
		DestinationIDs:  []uint{goa.ID, kerala.ID},
		Itinerary:       []models.ItineraryDay{{DayNumber: 1, Title: "Goa"}},
	}
	updated, err := w.Update(ctx, created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "Kerala and Goa", updated.Title)
	assert.Equal(t, models.CategoryInternational, updated.Category)
	assert.False(t, updated.IsActive)
	require.NotNil(t, updated.DiscountedPrice)
	assert.Equal(t, 38000.0, *updated.DiscountedPrice)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())

	require.Len(t, updated.Prices, 1)
	assert.Equal(t, usd.ID, updated.Prices[0].CurrencyID)
	require.Len(t, updated.Destinations, 2)
	require.Len(t, updated.Itinerary, 1)
	assert.Equal(t, "Goa", updated.Itinerary[0].Title)
	assert.Empty(t, updated.Hotels)
	assert.Empty(t, updated.Meals)
	assert.Empty(t, updated.Transfers)
	assert.Empty(t, updated.Sightseeing)
	assert.Empty(t, updated.Inclusions)
	assert.Empty(t, updated.Policies)
	assert.Empty(t, updated.Activities)

	// clearing the discount writes NULL
	in.DiscountedPrice = nil
	updated, err = w.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Nil(t, updated.DiscountedPrice)
}

func TestPackageWriter_UpdateMissing(t *testing.T) {
	w := NewPackageWriter(testutil.NewDB(t))

	_, err := w.Update(context.Background(), 42, PackagePayload{Title: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPackageWriter_UpdateFailureRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	w := NewPackageWriter(db)
	inr := testutil.Currency(t, db, "INR", "₹")
	kerala := testutil.Destination(t, db, "kerala", "Kerala")
	ctx := context.Background()

	created, err := w.Create(ctx, fullPayload("Kerala Backwaters", inr.ID, kerala.ID))
	require.NoError(t, err)
	before := childCounts(t, db, created.ID)

	// child tables are emptied in order inside the transaction; with the last
	// one gone the update fails after the earlier deletes already ran
	require.NoError(t, db.Migrator().DropTable(&models.OptionalActivity{}))

	_, err = w.Update(ctx, created.ID, fullPayload("Kerala Renamed", inr.ID, kerala.ID))
	require.Error(t, err)

	var reloaded models.Package
	require.NoError(t, db.First(&reloaded, created.ID).Error)
	assert.Equal(t, "Kerala Backwaters", reloaded.Title)

	var prices, days int64
	require.NoError(t, db.Model(&models.PackagePrice{}).Where("package_id = ?", created.ID).Count(&prices).Error)
	require.NoError(t, db.Model(&models.ItineraryDay{}).Where("package_id = ?", created.ID).Count(&days).Error)
	assert.Equal(t, before["*models.PackagePrice"], prices)
	assert.Equal(t, before["*models.ItineraryDay"], days)
}

func TestPackageWriter_DeleteCascadesAndUnlinks(t *testing.T) {
	db := testutil.NewDB(t)
	w := NewPackageWriter(db)
	inr := testutil.Currency(t, db, "INR", "₹")
	kerala := testutil.Destination(t, db, "kerala", "Kerala")
	ctx := context.Background()

	pkg, err := w.Create(ctx, fullPayload("Kerala Backwaters", inr.ID, kerala.ID))
	require.NoError(t, err)

	enquiry := models.Enquiry{Name: "Asha", Email: "asha@example.com", PackageID: &pkg.ID,
		Source: models.EnquirySourcePackageDetail, Status: models.EnquiryStatusNew}
	require.NoError(t, db.Omit("Package").Create(&enquiry).Error)

	require.NoError(t, w.Delete(ctx, pkg.ID))

	for table, n := range childCounts(t, db, pkg.ID) {
		assert.Zero(t, n, table)
	}
	var reloaded models.Enquiry
	require.NoError(t, db.First(&reloaded, enquiry.ID).Error)
	assert.Nil(t, reloaded.PackageID)

	var destinations int64
	require.NoError(t, db.Model(&models.Destination{}).Count(&destinations).Error)
	assert.Equal(t, int64(1), destinations)

	assert.ErrorIs(t, w.Delete(ctx, pkg.ID), ErrNotFound)
}

func TestPackageWriter_SetFlags(t *testing.T) {
	db := testutil.NewDB(t)
	w := NewPackageWriter(db)
	p := testutil.Package(t, db, testutil.PackageOpts{Slug: "goa"})
	ctx := context.Background()

	got, err := w.SetFlags(ctx, p.ID, PackageFlags{IsFeatured: boolPtr(true), IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.True(t, got.IsFeatured)
	assert.False(t, got.IsActive)
	assert.False(t, got.IsSpecial)

	_, err = w.SetFlags(ctx, p.ID, PackageFlags{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = w.SetFlags(ctx, 999, PackageFlags{IsSpecial: boolPtr(true)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPackageService_ExportGroupsPolicies(t *testing.T) {
	db := testutil.NewDB(t)
	w := NewPackageWriter(db)
	inr := testutil.Currency(t, db, "INR", "₹")
	kerala := testutil.Destination(t, db, "kerala", "Kerala")
	ctx := context.Background()

	pkg, err := w.Create(ctx, fullPayload("Kerala Backwaters", inr.ID, kerala.ID))
	require.NoError(t, err)

	out, err := NewPackageService(db).Export(ctx, pkg.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"Kerala"}, out.Destinations)
	assert.Equal(t, []string{"Breakfast"}, out.Inclusions)
	assert.Equal(t, []string{"Flights"}, out.Exclusions)
	require.Len(t, out.Policies, 2)
	assert.Equal(t, "CANCELLATION", out.Policies[0].Type)
	assert.Len(t, out.Policies[0].Policies, 2)
	assert.Equal(t, "PAYMENT", out.Policies[1].Type)
	assert.Equal(t, "INR", out.Pricing.Currency.Code)
	assert.Empty(t, out.Package.Policies)

	_, err = NewPackageService(db).Export(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
