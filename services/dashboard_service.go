package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"travel-backend/models"
)

type DashboardCounts struct {
	Packages       int64            `json:"packages"`
	ActivePackages int64            `json:"activePackages"`
	Destinations   int64            `json:"destinations"`
	Blogs          int64            `json:"blogs"`
	PendingReviews int64            `json:"pendingReviews"`
	Enquiries      int64            `json:"enquiries"`
	ByStatus       map[string]int64 `json:"enquiriesByStatus"`
}

// NotificationFeed is what the admin shell polls. Every poll returns the full
// current state, so clients replace rather than merge.
type NotificationFeed struct {
	Items       []models.Enquiry `json:"items"`
	UnreadCount int64            `json:"unreadCount"`
	ServerTime  time.Time        `json:"serverTime"`
}

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

func (s *DashboardService) Counts(ctx context.Context) (*DashboardCounts, error) {
	db := s.DB.WithContext(ctx)
	out := &DashboardCounts{ByStatus: make(map[string]int64, len(models.EnquiryStatuses))}
	for _, status := range models.EnquiryStatuses {
		out.ByStatus[status] = 0
	}

	counts := []struct {
		dst   *int64
		model interface{}
		where map[string]interface{}
	}{
		{&out.Packages, &models.Package{}, nil},
		{&out.ActivePackages, &models.Package{}, map[string]interface{}{"is_active": true}},
		{&out.Destinations, &models.Destination{}, nil},
		{&out.Blogs, &models.Blog{}, nil},
		{&out.PendingReviews, &models.Review{}, map[string]interface{}{"is_approved": false}},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != nil {
			q = q.Where(c.where)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	var rows []struct {
		Status string
		Total  int64
	}
	err := db.Model(&models.Enquiry{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out.ByStatus[r.Status] = r.Total
		out.Enquiries += r.Total
	}
	return out, nil
}

// Notifications returns the newest NEW enquiries, optionally only those
// created after since.
func (s *DashboardService) Notifications(ctx context.Context, since *time.Time, limit int) (*NotificationFeed, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	db := s.DB.WithContext(ctx)

	feed := &NotificationFeed{Items: []models.Enquiry{}, ServerTime: time.Now().UTC()}
	if err := db.Model(&models.Enquiry{}).Where("status = ?", models.EnquiryStatusNew).Count(&feed.UnreadCount).Error; err != nil {
		return nil, err
	}

	q := db.Where("status = ?", models.EnquiryStatusNew)
	if since != nil {
		q = q.Where("created_at > ?", *since)
	}
	err := q.Preload("Package", func(db *gorm.DB) *gorm.DB { return db.Select("id", "slug", "title") }).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&feed.Items).Error
	if err != nil {
		return nil, err
	}
	return feed, nil
}
