package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"

	"travel-backend/logger"
	"travel-backend/models"
	"travel-backend/query"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// EnquiryNotifier tells the sales desk about a new enquiry.
type EnquiryNotifier interface {
	NotifyEnquiry(ctx context.Context, e models.Enquiry) error
}

// EnquiryInput is what the public forms post. Status is never accepted from
// the client.
type EnquiryInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	PackageID   *uint  `json:"packageId"`
	Destination string `json:"destination"`
	TravelDate  string `json:"travelDate"`
	Travelers   int    `json:"travelers"`
	Message     string `json:"message"`
	Source      string `json:"source"`
}

type EnquiryUpdate struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type EnquiryFilter struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

type EnquiryListResult struct {
	Enquiries  []models.Enquiry `json:"enquiries"`
	Pagination Pagination       `json:"pagination"`
}

type EnquiryService struct {
	DB       *gorm.DB
	Notifier EnquiryNotifier
	Log      *logger.Logger
}

// NewEnquiryService builds the service. notifier may be nil when mail is not
// configured.
func NewEnquiryService(db *gorm.DB, notifier EnquiryNotifier, log *logger.Logger) *EnquiryService {
	if log == nil {
		log = logger.Discard()
	}
	return &EnquiryService{DB: db, Notifier: notifier, Log: log}
}

// Submit records a public enquiry with status NEW and notifies the desk.
// A failed notification is logged and does not fail the submission.
func (s *EnquiryService) Submit(ctx context.Context, in EnquiryInput) (*models.Enquiry, error) {
	e, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Omit("Package").Create(e).Error; err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		if err := s.Notifier.NotifyEnquiry(ctx, *e); err != nil {
			s.Log.WithFields(logger.Fields{
				"enquiry_id": e.ID,
				"source":     e.Source,
			}).WithError(err).Warn("Enquiry notification failed")
		}
	}
	return e, nil
}

func (s *EnquiryService) validate(ctx context.Context, in EnquiryInput) (*models.Enquiry, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return nil, invalid("name and email are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, invalid("invalid email")
	}

	source := strings.ToUpper(strings.TrimSpace(in.Source))
	if source == "" {
		source = models.EnquirySourceContactPage
	}
	if !slices.Contains(models.EnquirySources, source) {
		return nil, invalid("source must be one of %s", strings.Join(models.EnquirySources, ", "))
	}

	if in.Travelers < 0 {
		return nil, invalid("travelers cannot be negative")
	}

	e := &models.Enquiry{
		Name:        name,
		Email:       email,
		Phone:       strings.TrimSpace(in.Phone),
		Destination: strings.TrimSpace(in.Destination),
		Travelers:   in.Travelers,
		Message:     strings.TrimSpace(in.Message),
		Source:      source,
		Status:      models.EnquiryStatusNew,
	}

	if raw := strings.TrimSpace(in.TravelDate); raw != "" {
		d, err := parseTravelDate(raw)
		if err != nil {
			return nil, invalid("travelDate must be YYYY-MM-DD")
		}
		e.TravelDate = &d
	}

	if in.PackageID != nil && *in.PackageID != 0 {
		var pkg models.Package
		err := s.DB.WithContext(ctx).Select("id", "title").First(&pkg, *in.PackageID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("unknown package %d", *in.PackageID)
		}
		if err != nil {
			return nil, err
		}
		id := pkg.ID
		e.PackageID = &id
		e.Package = &pkg
	}
	return e, nil
}

func parseTravelDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// List returns enquiries newest first, optionally by status and a search over
// name, email and phone.
func (s *EnquiryService) List(ctx context.Context, f EnquiryFilter) (*EnquiryListResult, error) {
	f.Page = clampPage(f.Page)
	if f.PageSize <= 0 || f.PageSize > 100 {
		f.PageSize = 20
	}

	filter := func(db *gorm.DB) *gorm.DB {
		if status := strings.ToUpper(strings.TrimSpace(f.Status)); status != "" && status != "ALL" {
			db = db.Where("status = ?", status)
		}
		if term := strings.TrimSpace(f.Search); term != "" {
			like := query.LikePattern(term)
			db = db.Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!' OR phone LIKE ? ESCAPE '!'", like, like, like)
		}
		return db
	}

	db := s.DB.WithContext(ctx)
	var total int64
	if err := db.Model(&models.Enquiry{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, err
	}

	out := []models.Enquiry{}
	err := db.Scopes(filter).
		Preload("Package", func(db *gorm.DB) *gorm.DB { return db.Select("id", "slug", "title") }).
		Order("created_at DESC").
		Order("id DESC").
		Limit(f.PageSize).
		Offset((f.Page - 1) * f.PageSize).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return &EnquiryListResult{Enquiries: out, Pagination: newPagination(total, f.Page, f.PageSize)}, nil
}

func (s *EnquiryService) Get(ctx context.Context, id uint) (*models.Enquiry, error) {
	var e models.Enquiry
	err := s.DB.WithContext(ctx).
		Preload("Package", func(db *gorm.DB) *gorm.DB { return db.Select("id", "slug", "title") }).
		First(&e, id).Error
	if err != nil {
		return nil, notFound(err, "enquiry")
	}
	return &e, nil
}

// UpdateStatus is the only way an enquiry changes after submission.
func (s *EnquiryService) UpdateStatus(ctx context.Context, id uint, in EnquiryUpdate) (*models.Enquiry, error) {
	updates := map[string]interface{}{}
	if in.Status != nil {
		status := strings.ToUpper(strings.TrimSpace(*in.Status))
		if !slices.Contains(models.EnquiryStatuses, status) {
			return nil, invalid("status must be one of %s", strings.Join(models.EnquiryStatuses, ", "))
		}
		updates["status"] = status
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}
	if len(updates) == 0 {
		return nil, invalid("nothing to update")
	}

	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(e).Omit("Package").Updates(updates).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EnquiryService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Enquiry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: enquiry", ErrNotFound)
	}
	return nil
}
