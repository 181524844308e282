package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Blog is a travel article shown on the public site once published.
type Blog struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Slug        string                      `gorm:"uniqueIndex;size:191;not null" json:"slug"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Excerpt     string                      `gorm:"type:text" json:"excerpt"`
	Content     string                      `gorm:"type:longtext" json:"content"`
	CoverImage  string                      `gorm:"size:1024" json:"coverImage"`
	Author      string                      `gorm:"size:255" json:"author"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	IsPublished bool                        `gorm:"default:false;index" json:"isPublished"`
	PublishedAt *time.Time                  `json:"publishedAt"`
	CreatedAt   time.Time                   `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

func (b *Blog) Validate() error {
	b.Title = strings.TrimSpace(b.Title)
	if b.Title == "" {
		return errors.New("title is required")
	}
	if b.IsPublished && b.PublishedAt == nil {
		now := time.Now()
		b.PublishedAt = &now
	}
	return nil
}

func (b *Blog) GetSlug() string     { return b.Slug }
func (b *Blog) SetSlug(slug string) { b.Slug = slug }
func (b *Blog) SlugSource() string  { return b.Title }

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Location   string    `gorm:"size:255" json:"location"`
	Rating     int       `gorm:"not null;default:5" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	Avatar     string    `gorm:"size:1024" json:"avatar"`
	PackageID  *uint     `gorm:"index" json:"packageId"`
	IsApproved bool      `gorm:"default:false;index" json:"isApproved"`
	IsFeatured bool      `gorm:"default:false" json:"isFeatured"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (r *Review) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

type FAQ struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Category  string    `gorm:"size:100;index" json:"category"`
	SortOrder int       `gorm:"default:0" json:"sortOrder"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (FAQ) TableName() string { return "faqs" }

func (f *FAQ) Validate() error {
	if strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
		return errors.New("question and answer are required")
	}
	return nil
}

// Service is an agency offering (visa help, flights, ...) listed on the site.
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"uniqueIndex;size:191;not null" json:"slug"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"size:255" json:"icon"`
	Image       string    `gorm:"size:1024" json:"image"`
	SortOrder   int       `gorm:"default:0" json:"sortOrder"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s *Service) Validate() error {
	s.Title = strings.TrimSpace(s.Title)
	if s.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

func (s *Service) GetSlug() string     { return s.Slug }
func (s *Service) SetSlug(slug string) { s.Slug = slug }
func (s *Service) SlugSource() string  { return s.Title }

// SeoMeta holds per-page meta tags keyed by the page path.
type SeoMeta struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PagePath    string    `gorm:"uniqueIndex;size:191;not null" json:"pagePath"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Keywords    string    `gorm:"type:text" json:"keywords"`
	OGImage     string    `gorm:"size:1024" json:"ogImage"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (SeoMeta) TableName() string { return "seo_meta" }

func (m *SeoMeta) Validate() error {
	m.PagePath = strings.TrimSpace(m.PagePath)
	if m.PagePath == "" {
		return errors.New("pagePath is required")
	}
	if !strings.HasPrefix(m.PagePath, "/") {
		m.PagePath = "/" + m.PagePath
	}
	return nil
}
