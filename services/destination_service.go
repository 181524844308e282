package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"travel-backend/models"
	"travel-backend/query"
	"travel-backend/utils"
)

type DestinationInput struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsDomestic  bool   `json:"isDomestic"`
	IsFeatured  bool   `json:"isFeatured"`
	IsActive    *bool  `json:"isActive"`
}

// DestinationDetail is a destination page: the destination and its active
// packages as listing cards.
type DestinationDetail struct {
	models.Destination
	Packages []PackageCard `json:"packages"`
}

// DeleteResult reports how many packages lost their link to the deleted
// destination.
type DeleteResult struct {
	AffectedPackages int64 `json:"affectedPackages"`
}

type DestinationService struct {
	DB *gorm.DB
}

func NewDestinationService(db *gorm.DB) *DestinationService {
	return &DestinationService{DB: db}
}

// ListActive returns active destinations by name; featuredOnly narrows to the
// home-page set.
func (s *DestinationService) ListActive(ctx context.Context, featuredOnly bool) ([]models.Destination, error) {
	q := s.DB.WithContext(ctx).Where("is_active = ?", true)
	if featuredOnly {
		q = q.Where("is_featured = ?", true)
	}
	var out []models.Destination
	err := q.Order("name ASC").Find(&out).Error
	return out, err
}

// List is the admin view: every destination with an optional name search.
func (s *DestinationService) List(ctx context.Context, search string) ([]models.Destination, error) {
	q := s.DB.WithContext(ctx).Model(&models.Destination{})
	if term := strings.TrimSpace(search); term != "" {
		like := query.LikePattern(term)
		q = q.Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(country) LIKE ? ESCAPE '!'", like, like)
	}
	var out []models.Destination
	err := q.Order("name ASC").Find(&out).Error
	return out, err
}

func (s *DestinationService) Get(ctx context.Context, id uint) (*models.Destination, error) {
	var d models.Destination
	if err := s.DB.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, notFound(err, "destination")
	}
	return &d, nil
}

// GetBySlug returns an active destination with its active packages, newest
// first.
func (s *DestinationService) GetBySlug(ctx context.Context, slug string) (*DestinationDetail, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	db := s.DB.WithContext(ctx)

	var d models.Destination
	if err := db.Where("slug = ? AND is_active = ?", slug, true).First(&d).Error; err != nil {
		return nil, notFound(err, "destination "+slug)
	}

	pred := query.And(
		query.Eq(query.FieldIsActive, true),
		query.Some(query.RelDestinations, query.Eq(query.FieldDestinationSlug, d.Slug)),
	)
	var pkgs []models.Package
	err := query.Apply(db.Model(&models.Package{}), pred).
		Scopes(preloadCard).
		Order("packages.created_at DESC").
		Order("packages.id DESC").
		Find(&pkgs).Error
	if err != nil {
		return nil, err
	}
	return &DestinationDetail{Destination: d, Packages: toCards(pkgs)}, nil
}

func (s *DestinationService) Create(ctx context.Context, in DestinationInput) (*models.Destination, error) {
	d := models.Destination{IsActive: true}
	if err := applyDestinationInput(&d, in); err != nil {
		return nil, err
	}
	err := s.DB.WithContext(ctx).Create(&d).Error
	if isDuplicateKey(err) {
		return nil, duplicate("destination slug %q is already in use", d.Slug)
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DestinationService) Update(ctx context.Context, id uint, in DestinationInput) (*models.Destination, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyDestinationInput(d, in); err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Model(d).
		Select("slug", "name", "country", "description", "image", "is_domestic", "is_featured", "is_active", "updated_at").
		Updates(d).Error
	if isDuplicateKey(err) {
		return nil, duplicate("destination slug %q is already in use", d.Slug)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the destination and its package links. Packages themselves
// are kept; the result says how many were linked.
func (s *DestinationService) Delete(ctx context.Context, id uint) (*DeleteResult, error) {
	var res DeleteResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d models.Destination
		if err := tx.First(&d, id).Error; err != nil {
			return notFound(err, "destination")
		}
		if err := tx.Model(&models.PackageDestination{}).
			Where("destination_id = ?", id).
			Distinct("package_id").
			Count(&res.AffectedPackages).Error; err != nil {
			return err
		}
		if err := tx.Where("destination_id = ?", id).Delete(&models.PackageDestination{}).Error; err != nil {
			return err
		}
		return tx.Delete(&d).Error
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func applyDestinationInput(d *models.Destination, in DestinationInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalid("name is required")
	}
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if !utils.IsValidSlug(slug) {
		return invalid("slug %q must contain only lowercase letters, digits and single hyphens", slug)
	}

	d.Slug = slug
	d.Name = name
	d.Country = strings.TrimSpace(in.Country)
	d.Description = in.Description
	d.Image = strings.TrimSpace(in.Image)
	d.IsDomestic = in.IsDomestic
	d.IsFeatured = in.IsFeatured
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
	return nil
}
