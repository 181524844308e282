package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"travel-backend/models"
	"travel-backend/utils"
)

// PricePayload is a per-currency price. The currency is referenced by id or,
// when the id is zero, by code.
type PricePayload struct {
	CurrencyID      uint     `json:"currencyId"`
	CurrencyCode    string   `json:"currencyCode"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discountedPrice"`
}

// PackagePayload is the full admin form for a package. Nested collections
// replace whatever the package had before.
type PackagePayload struct {
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Overview        string   `json:"overview"`
	HeroImage       string   `json:"heroImage"`
	GalleryImages   []string `json:"galleryImages"`
	DurationDays    int      `json:"durationDays"`
	DurationNights  int      `json:"durationNights"`
	DurationLabel   string   `json:"durationLabel"`
	Category        string   `json:"category"`
	IsActive        *bool    `json:"isActive"`
	IsFeatured      bool     `json:"isFeatured"`
	IsPopular       bool     `json:"isPopular"`
	IsSpecial       bool     `json:"isSpecial"`
	StartingPrice   float64  `json:"startingPrice"`
	DiscountedPrice *float64 `json:"discountedPrice"`

	Prices         []PricePayload `json:"prices"`
	DestinationIDs []uint         `json:"destinationIds"`

	Itinerary   []models.ItineraryDay       `json:"itinerary"`
	Hotels      []models.PackageHotel       `json:"hotels"`
	Meals       []models.PackageMeal        `json:"meals"`
	Transfers   []models.PackageTransfer    `json:"transfers"`
	Sightseeing []models.PackageSightseeing `json:"sightseeing"`
	Inclusions  []models.PackageInclusion   `json:"inclusions"`
	Policies    []models.PackagePolicy      `json:"policies"`
	Activities  []models.OptionalActivity   `json:"activities"`
}

// PackageFlags toggles listing flags without touching the rest of the
// package. Nil fields are left unchanged.
type PackageFlags struct {
	IsActive   *bool `json:"isActive"`
	IsFeatured *bool `json:"isFeatured"`
	IsPopular  *bool `json:"isPopular"`
	IsSpecial  *bool `json:"isSpecial"`
}

// packageChildren lists every table owned by a package.
var packageChildren = []interface{}{
	&models.PackagePrice{},
	&models.PackageDestination{},
	&models.ItineraryDay{},
	&models.PackageHotel{},
	&models.PackageMeal{},
	&models.PackageTransfer{},
	&models.PackageSightseeing{},
	&models.PackageInclusion{},
	&models.PackagePolicy{},
	&models.OptionalActivity{},
}

// scalar columns written by Update; children are handled separately
var packageColumns = []string{
	"slug", "title", "description", "overview", "hero_image", "gallery_images",
	"duration_days", "duration_nights", "duration_label", "category",
	"is_active", "is_featured", "is_popular", "is_special",
	"starting_price", "discounted_price", "updated_at",
}

type PackageWriter struct {
	DB *gorm.DB
}

func NewPackageWriter(db *gorm.DB) *PackageWriter {
	return &PackageWriter{DB: db}
}

// Create inserts a package together with all of its child collections.
func (s *PackageWriter) Create(ctx context.Context, in PackagePayload) (*models.Package, error) {
	db := s.DB.WithContext(ctx)
	pkg, children, err := s.prepare(db, in, true)
	if err != nil {
		return nil, err
	}
	if err := ensureSlugFree(db, pkg.Slug, 0); err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(pkg).Error; err != nil {
			return err
		}
		return createChildren(tx, pkg.ID, children)
	})
	if isDuplicateKey(err) {
		return nil, duplicate("slug %q is already in use", pkg.Slug)
	}
	if err != nil {
		return nil, err
	}
	return loadPackage(db, pkg.ID)
}

// Update replaces the package's scalars and every child collection in one
// transaction. A slug owned by another package is rejected before anything
// is written.
func (s *PackageWriter) Update(ctx context.Context, id uint, in PackagePayload) (*models.Package, error) {
	db := s.DB.WithContext(ctx)

	var existing models.Package
	if err := db.First(&existing, id).Error; err != nil {
		return nil, notFound(err, "package")
	}

	pkg, children, err := s.prepare(db, in, existing.IsActive)
	if err != nil {
		return nil, err
	}
	if err := ensureSlugFree(db, pkg.Slug, id); err != nil {
		return nil, err
	}

	pkg.ID = id
	pkg.CreatedAt = existing.CreatedAt
	pkg.UpdatedAt = time.Now()

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Package{ID: id}).Select(packageColumns).Updates(pkg).Error; err != nil {
			return err
		}
		return createChildren(tx, id, children)
	})
	if isDuplicateKey(err) {
		return nil, duplicate("slug %q is already in use", pkg.Slug)
	}
	if err != nil {
		return nil, err
	}
	return loadPackage(db, id)
}

// Delete removes a package and everything it owns. Enquiries and reviews
// that pointed at it are kept and unlinked.
func (s *PackageWriter) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Package{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: package", ErrNotFound)
		}
		if err := deleteChildren(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Enquiry{}).Where("package_id = ?", id).Update("package_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Review{}).Where("package_id = ?", id).Update("package_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Package{}, id).Error
	})
}

// SetFlags flips the listing flags of one package.
func (s *PackageWriter) SetFlags(ctx context.Context, id uint, flags PackageFlags) (*models.Package, error) {
	updates := map[string]interface{}{}
	if flags.IsActive != nil {
		updates["is_active"] = *flags.IsActive
	}
	if flags.IsFeatured != nil {
		updates["is_featured"] = *flags.IsFeatured
	}
	if flags.IsPopular != nil {
		updates["is_popular"] = *flags.IsPopular
	}
	if flags.IsSpecial != nil {
		updates["is_special"] = *flags.IsSpecial
	}
	if len(updates) == 0 {
		return nil, invalid("no flags given")
	}

	db := s.DB.WithContext(ctx)
	var pkg models.Package
	if err := db.First(&pkg, id).Error; err != nil {
		return nil, notFound(err, "package")
	}
	if err := db.Model(&pkg).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

type packageChildRows struct {
	prices       []models.PackagePrice
	destinations []models.PackageDestination
	itinerary    []models.ItineraryDay
	hotels       []models.PackageHotel
	meals        []models.PackageMeal
	transfers    []models.PackageTransfer
	sightseeing  []models.PackageSightseeing
	inclusions   []models.PackageInclusion
	policies     []models.PackagePolicy
	activities   []models.OptionalActivity
}

// prepare validates the payload and resolves currency and destination
// references. defaultActive applies when the payload leaves isActive unset.
func (s *PackageWriter) prepare(db *gorm.DB, in PackagePayload, defaultActive bool) (*models.Package, packageChildRows, error) {
	var rows packageChildRows
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, rows, invalid("title is required")
	}

	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if slug == "" {
		slug = utils.Slugify(title)
	}
	if !utils.IsValidSlug(slug) {
		return nil, rows, invalid("slug %q must contain only lowercase letters, digits and single hyphens", slug)
	}

	category := strings.ToUpper(strings.TrimSpace(in.Category))
	if category == "" {
		category = models.CategoryDomestic
	}
	if category != models.CategoryDomestic && category != models.CategoryInternational {
		return nil, rows, invalid("category must be DOMESTIC or INTERNATIONAL")
	}

	if in.DurationDays < 0 || in.DurationNights < 0 {
		return nil, rows, invalid("duration cannot be negative")
	}
	if in.StartingPrice < 0 || (in.DiscountedPrice != nil && *in.DiscountedPrice < 0) {
		return nil, rows, invalid("prices cannot be negative")
	}

	active := defaultActive
	if in.IsActive != nil {
		active = *in.IsActive
	}

	pkg := &models.Package{
		Slug:            slug,
		Title:           title,
		Description:     strings.TrimSpace(in.Description),
		Overview:        in.Overview,
		HeroImage:       strings.TrimSpace(in.HeroImage),
		GalleryImages:   in.GalleryImages,
		DurationDays:    in.DurationDays,
		DurationNights:  in.DurationNights,
		DurationLabel:   strings.TrimSpace(in.DurationLabel),
		Category:        category,
		IsActive:        active,
		IsFeatured:      in.IsFeatured,
		IsPopular:       in.IsPopular,
		IsSpecial:       in.IsSpecial,
		StartingPrice:   in.StartingPrice,
		DiscountedPrice: in.DiscountedPrice,
	}
	if pkg.GalleryImages == nil {
		pkg.GalleryImages = []string{}
	}

	prices, err := resolvePrices(db, in.Prices)
	if err != nil {
		return nil, rows, err
	}
	rows.prices = prices

	links, err := resolveDestinations(db, in.DestinationIDs)
	if err != nil {
		return nil, rows, err
	}
	rows.destinations = links

	rows.itinerary = in.Itinerary
	for i := range rows.itinerary {
		if rows.itinerary[i].DayNumber <= 0 {
			rows.itinerary[i].DayNumber = i + 1
		}
	}
	rows.hotels = in.Hotels
	for _, h := range rows.hotels {
		if h.Nights < 0 || h.StarRating < 0 || h.StarRating > 7 {
			return nil, rows, invalid("hotel %q has invalid nights or star rating", h.HotelName)
		}
	}
	rows.meals = in.Meals
	rows.transfers = in.Transfers
	rows.sightseeing = in.Sightseeing

	rows.inclusions = in.Inclusions
	for i := range rows.inclusions {
		item := &rows.inclusions[i]
		item.Type = strings.ToUpper(strings.TrimSpace(item.Type))
		if item.Type == "" {
			item.Type = models.InclusionTypeInclusion
		}
		if item.Type != models.InclusionTypeInclusion && item.Type != models.InclusionTypeExclusion {
			return nil, rows, invalid("inclusion type must be INCLUSION or EXCLUSION")
		}
		if strings.TrimSpace(item.Text) == "" {
			return nil, rows, invalid("inclusion text is required")
		}
	}

	rows.policies = in.Policies
	for i := range rows.policies {
		p := &rows.policies[i]
		p.Type = strings.ToUpper(strings.TrimSpace(p.Type))
		if p.Type == "" {
			return nil, rows, invalid("policy type is required")
		}
	}

	rows.activities = in.Activities
	for _, a := range rows.activities {
		if a.Price != nil && *a.Price < 0 {
			return nil, rows, invalid("activity %q has a negative price", a.Name)
		}
	}
	return pkg, rows, nil
}

func resolvePrices(db *gorm.DB, in []PricePayload) ([]models.PackagePrice, error) {
	out := make([]models.PackagePrice, 0, len(in))
	seen := map[uint]bool{}
	for _, p := range in {
		if p.Price < 0 || (p.DiscountedPrice != nil && *p.DiscountedPrice < 0) {
			return nil, invalid("prices cannot be negative")
		}

		var cur models.Currency
		var err error
		if p.CurrencyID != 0 {
			err = db.First(&cur, p.CurrencyID).Error
		} else {
			code := strings.ToUpper(strings.TrimSpace(p.CurrencyCode))
			if code == "" {
				return nil, invalid("price row needs a currency")
			}
			err = db.Where("code = ?", code).First(&cur).Error
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("unknown currency %d%s", p.CurrencyID, p.CurrencyCode)
		}
		if err != nil {
			return nil, err
		}

		if seen[cur.ID] {
			return nil, invalid("duplicate price for currency %s", cur.Code)
		}
		seen[cur.ID] = true
		out = append(out, models.PackagePrice{
			CurrencyID:      cur.ID,
			Price:           p.Price,
			DiscountedPrice: p.DiscountedPrice,
		})
	}
	return out, nil
}

func resolveDestinations(db *gorm.DB, ids []uint) ([]models.PackageDestination, error) {
	out := make([]models.PackageDestination, 0, len(ids))
	seen := map[uint]bool{}
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, models.PackageDestination{DestinationID: id})
	}
	if len(out) == 0 {
		return out, nil
	}

	var count int64
	unique := make([]uint, 0, len(out))
	for _, l := range out {
		unique = append(unique, l.DestinationID)
	}
	if err := db.Model(&models.Destination{}).Where("id IN ?", unique).Count(&count).Error; err != nil {
		return nil, err
	}
	if int(count) != len(unique) {
		return nil, invalid("unknown destination in %v", unique)
	}
	return out, nil
}

func ensureSlugFree(db *gorm.DB, slug string, exceptID uint) error {
	var count int64
	q := db.Model(&models.Package{}).Where("slug = ?", slug)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return duplicate("slug %q is already in use", slug)
	}
	return nil
}

func deleteChildren(tx *gorm.DB, packageID uint) error {
	for _, model := range packageChildren {
		if err := tx.Where("package_id = ?", packageID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createChildren(tx *gorm.DB, packageID uint, rows packageChildRows) error {
	for i := range rows.prices {
		rows.prices[i].ID, rows.prices[i].PackageID = 0, packageID
	}
	for i := range rows.destinations {
		rows.destinations[i].ID, rows.destinations[i].PackageID = 0, packageID
	}
	for i := range rows.itinerary {
		rows.itinerary[i].ID, rows.itinerary[i].PackageID = 0, packageID
	}
	for i := range rows.hotels {
		rows.hotels[i].ID, rows.hotels[i].PackageID = 0, packageID
	}
	for i := range rows.meals {
		rows.meals[i].ID, rows.meals[i].PackageID = 0, packageID
	}
	for i := range rows.transfers {
		rows.transfers[i].ID, rows.transfers[i].PackageID = 0, packageID
	}
	for i := range rows.sightseeing {
		rows.sightseeing[i].ID, rows.sightseeing[i].PackageID = 0, packageID
	}
	for i := range rows.inclusions {
		rows.inclusions[i].ID, rows.inclusions[i].PackageID = 0, packageID
		if rows.inclusions[i].SortOrder == 0 {
			rows.inclusions[i].SortOrder = i + 1
		}
	}
	for i := range rows.policies {
		rows.policies[i].ID, rows.policies[i].PackageID = 0, packageID
		if rows.policies[i].SortOrder == 0 {
			rows.policies[i].SortOrder = i + 1
		}
	}
	for i := range rows.activities {
		rows.activities[i].ID, rows.activities[i].PackageID = 0, packageID
	}

	batches := []interface{}{
		&rows.prices, &rows.destinations, &rows.itinerary, &rows.hotels, &rows.meals,
		&rows.transfers, &rows.sightseeing, &rows.inclusions, &rows.policies, &rows.activities,
	}
	lengths := []int{
		len(rows.prices), len(rows.destinations), len(rows.itinerary), len(rows.hotels), len(rows.meals),
		len(rows.transfers), len(rows.sightseeing), len(rows.inclusions), len(rows.policies), len(rows.activities),
	}
	for i, batch := range batches {
		if lengths[i] == 0 {
			continue
		}
		if err := tx.Omit(clause.Associations).Create(batch).Error; err != nil {
			return err
		}
	}
	return nil
}

func loadPackage(db *gorm.DB, id uint) (*models.Package, error) {
	var pkg models.Package
	if err := db.Scopes(preloadDetail).First(&pkg, id).Error; err != nil {
		return nil, notFound(err, "package")
	}
	return &pkg, nil
}
