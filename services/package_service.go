package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"travel-backend/models"
	"travel-backend/query"
)

// PageSize is the fixed public listing page size.
const PageSize = 12

type Pagination struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

// MaxPage bounds page numbers so the row offset cannot overflow.
const MaxPage = 100000

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	if page > MaxPage {
		return MaxPage
	}
	return page
}

func newPagination(total int64, page, size int) Pagination {
	pages := int((total + int64(size) - 1) / int64(size))
	return Pagination{Total: total, TotalPages: pages, CurrentPage: page, PageSize: size}
}

// PackageCard is a package as shown in listings: the package with its
// prices, the first destination's name and the projected price block.
type PackageCard struct {
	models.Package
	DestinationName string    `json:"destinationName"`
	Pricing         PriceView `json:"pricing"`
}

func newPackageCard(pkg models.Package) PackageCard {
	card := PackageCard{Package: pkg, Pricing: ProjectPrice(pkg)}
	if len(pkg.Destinations) > 0 {
		card.DestinationName = pkg.Destinations[0].Destination.Name
	}
	return card
}

type PackageListResult struct {
	Packages   []PackageCard `json:"packages"`
	Pagination Pagination    `json:"pagination"`
}

type PackageService struct {
	DB *gorm.DB
}

func NewPackageService(db *gorm.DB) *PackageService {
	return &PackageService{DB: db}
}

// List resolves the public listing: active packages matching the filters,
// newest first, PageSize per page.
func (s *PackageService) List(ctx context.Context, filters query.PackageFilters, page int) (*PackageListResult, error) {
	pred := query.And(query.Eq(query.FieldIsActive, true), query.BuildPackagePredicate(filters))
	return s.page(ctx, pred, page, PageSize)
}

// ListAdmin lists every package, active or not, optionally narrowed by a
// search term and category.
func (s *PackageService) ListAdmin(ctx context.Context, search, category string, page, size int) (*PackageListResult, error) {
	if size <= 0 || size > 100 {
		size = 20
	}
	pred := query.BuildPackagePredicate(query.PackageFilters{Search: search, Category: category})
	return s.page(ctx, pred, page, size)
}

func (s *PackageService) page(ctx context.Context, pred query.Predicate, page, size int) (*PackageListResult, error) {
	page = clampPage(page)
	filter := func(db *gorm.DB) *gorm.DB { return query.Apply(db, pred) }

	var total int64
	if err := s.DB.WithContext(ctx).Model(&models.Package{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, err
	}

	var pkgs []models.Package
	err := s.DB.WithContext(ctx).
		Scopes(filter, preloadCard).
		Order("packages.created_at DESC").
		Order("packages.id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&pkgs).Error
	if err != nil {
		return nil, err
	}

	return &PackageListResult{
		Packages:   toCards(pkgs),
		Pagination: newPagination(total, page, size),
	}, nil
}

// Featured returns up to limit active featured packages.
func (s *PackageService) Featured(ctx context.Context, limit int) ([]PackageCard, error) {
	return s.rail(ctx, query.FieldIsFeatured, limit)
}

// Special returns up to limit active packages flagged special.
func (s *PackageService) Special(ctx context.Context, limit int) ([]PackageCard, error) {
	return s.rail(ctx, query.FieldIsSpecial, limit)
}

func (s *PackageService) Popular(ctx context.Context, limit int) ([]PackageCard, error) {
	return s.rail(ctx, query.FieldIsPopular, limit)
}

func (s *PackageService) rail(ctx context.Context, flag query.Field, limit int) ([]PackageCard, error) {
	if limit <= 0 || limit > 50 {
		limit = 6
	}
	pred := query.And(query.Eq(query.FieldIsActive, true), query.Eq(flag, true))

	var pkgs []models.Package
	err := query.Apply(s.DB.WithContext(ctx).Model(&models.Package{}), pred).
		Scopes(preloadCard).
		Order("packages.created_at DESC").
		Order("packages.id DESC").
		Limit(limit).
		Find(&pkgs).Error
	if err != nil {
		return nil, err
	}
	return toCards(pkgs), nil
}

// PackageDetail is the full public view of one package.
type PackageDetail struct {
	PackageCard
	Destinations []models.Destination `json:"destinationList"`
}

// GetBySlug returns an active package with every child collection.
func (s *PackageService) GetBySlug(ctx context.Context, slug string) (*PackageDetail, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	var pkg models.Package
	err := s.DB.WithContext(ctx).
		Scopes(preloadDetail).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&pkg).Error
	if err != nil {
		return nil, notFound(err, "package "+slug)
	}
	return newPackageDetail(pkg), nil
}

// GetByID returns a package regardless of its active flag (admin edit form).
func (s *PackageService) GetByID(ctx context.Context, id uint) (*PackageDetail, error) {
	pkg, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return newPackageDetail(*pkg), nil
}

func (s *PackageService) load(ctx context.Context, id uint) (*models.Package, error) {
	return loadPackage(s.DB.WithContext(ctx), id)
}

func newPackageDetail(pkg models.Package) *PackageDetail {
	d := &PackageDetail{PackageCard: newPackageCard(pkg)}
	d.Destinations = make([]models.Destination, 0, len(pkg.Destinations))
	for _, link := range pkg.Destinations {
		d.Destinations = append(d.Destinations, link.Destination)
	}
	return d
}

func toCards(pkgs []models.Package) []PackageCard {
	cards := make([]PackageCard, 0, len(pkgs))
	for _, pkg := range pkgs {
		cards = append(cards, newPackageCard(pkg))
	}
	return cards
}

func byID(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Order(table + ".id") }
}

func byDay(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Order(table + ".day_number").Order(table + ".id") }
}

func bySortOrder(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Order(table + ".sort_order").Order(table + ".id") }
}

// preloadCard loads what a listing card needs. Prices are ordered by id so
// the "first price row" is stable.
func preloadCard(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Prices", byID("package_prices")).
		Preload("Prices.Currency").
		Preload("Destinations", byID("package_destinations")).
		Preload("Destinations.Destination")
}

func preloadDetail(db *gorm.DB) *gorm.DB {
	return preloadCard(db).
		Preload("Itinerary", byDay("itinerary_days")).
		Preload("Hotels", byID("package_hotels")).
		Preload("Meals", byDay("package_meals")).
		Preload("Transfers", byDay("package_transfers")).
		Preload("Sightseeing", byDay("package_sightseeing")).
		Preload("Inclusions", bySortOrder("package_inclusions")).
		Preload("Policies", bySortOrder("package_policies")).
		Preload("Activities", byID("optional_activities"))
}
