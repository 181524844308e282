package services

import (
	"context"
	"reflect"
	"strings"

	"gorm.io/gorm"

	"travel-backend/models"
	"travel-backend/query"
	"travel-backend/utils"
)

type validator interface {
	Validate() error
}

// sluggable models get a slug derived from SlugSource when none is given.
type sluggable interface {
	GetSlug() string
	SetSlug(string)
	SlugSource() string
}

// ContentOptions describes how one peripheral content type is listed and
// looked up.
type ContentOptions struct {
	Name          string
	PublicScope   func(*gorm.DB) *gorm.DB
	Order         []string
	SearchColumns []string
	// SlugColumn is the natural key used by GetBySlug ("slug", "page_path").
	SlugColumn string
	// FilterColumns are the columns a caller may filter on by equality.
	FilterColumns []string
}

type ContentQuery struct {
	Public   bool
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

type ContentPage[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// ContentService is plain gorm CRUD shared by blogs, reviews, FAQs, services
// and SEO metadata.
type ContentService[T any] struct {
	DB   *gorm.DB
	Opts ContentOptions
}

func NewContentService[T any](db *gorm.DB, opts ContentOptions) *ContentService[T] {
	return &ContentService[T]{DB: db, Opts: opts}
}

func NewBlogService(db *gorm.DB) *ContentService[models.Blog] {
	return NewContentService[models.Blog](db, ContentOptions{
		Name:          "blog",
		PublicScope:   func(db *gorm.DB) *gorm.DB { return db.Where("is_published = ?", true) },
		Order:         []string{"published_at DESC", "created_at DESC", "id DESC"},
		SearchColumns: []string{"title", "excerpt", "author"},
		SlugColumn:    "slug",
	})
}

func NewReviewService(db *gorm.DB) *ContentService[models.Review] {
	return NewContentService[models.Review](db, ContentOptions{
		Name:          "review",
		PublicScope:   func(db *gorm.DB) *gorm.DB { return db.Where("is_approved = ?", true) },
		Order:         []string{"is_featured DESC", "created_at DESC", "id DESC"},
		SearchColumns: []string{"name", "location", "comment"},
		FilterColumns: []string{"package_id", "is_approved", "is_featured"},
	})
}

func NewFAQService(db *gorm.DB) *ContentService[models.FAQ] {
	return NewContentService[models.FAQ](db, ContentOptions{
		Name:          "faq",
		PublicScope:   func(db *gorm.DB) *gorm.DB { return db.Where("is_active = ?", true) },
		Order:         []string{"sort_order ASC", "id ASC"},
		SearchColumns: []string{"question", "answer"},
		FilterColumns: []string{"category"},
	})
}

func NewServiceCatalog(db *gorm.DB) *ContentService[models.Service] {
	return NewContentService[models.Service](db, ContentOptions{
		Name:          "service",
		PublicScope:   func(db *gorm.DB) *gorm.DB { return db.Where("is_active = ?", true) },
		Order:         []string{"sort_order ASC", "id ASC"},
		SearchColumns: []string{"title", "description"},
		SlugColumn:    "slug",
	})
}

func NewSeoMetaService(db *gorm.DB) *ContentService[models.SeoMeta] {
	return NewContentService[models.SeoMeta](db, ContentOptions{
		Name:          "seo entry",
		Order:         []string{"page_path ASC"},
		SearchColumns: []string{"page_path", "title"},
		SlugColumn:    "page_path",
	})
}

func (s *ContentService[T]) scoped(ctx context.Context, public bool) *gorm.DB {
	db := s.DB.WithContext(ctx).Model(new(T))
	if public && s.Opts.PublicScope != nil {
		db = s.Opts.PublicScope(db)
	}
	return db
}

func (s *ContentService[T]) List(ctx context.Context, q ContentQuery) (*ContentPage[T], error) {
	q.Page = clampPage(q.Page)
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}

	filter := func(db *gorm.DB) *gorm.DB {
		if term := strings.TrimSpace(q.Search); term != "" && len(s.Opts.SearchColumns) > 0 {
			like := query.LikePattern(term)
			clauses := make([]string, len(s.Opts.SearchColumns))
			args := make([]interface{}, len(s.Opts.SearchColumns))
			for i, col := range s.Opts.SearchColumns {
				clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '!'"
				args[i] = like
			}
			db = db.Where(strings.Join(clauses, " OR "), args...)
		}
		for _, col := range s.Opts.FilterColumns {
			if v, ok := q.Filters[col]; ok && v != "" {
				db = db.Where(col+" = ?", v)
			}
		}
		return db
	}

	var total int64
	if err := s.scoped(ctx, q.Public).Scopes(filter).Count(&total).Error; err != nil {
		return nil, err
	}

	items := []T{}
	db := s.scoped(ctx, q.Public).Scopes(filter)
	for _, o := range s.Opts.Order {
		db = db.Order(o)
	}
	if err := db.Limit(q.PageSize).Offset((q.Page - 1) * q.PageSize).Find(&items).Error; err != nil {
		return nil, err
	}
	return &ContentPage[T]{Items: items, Pagination: newPagination(total, q.Page, q.PageSize)}, nil
}

func (s *ContentService[T]) Get(ctx context.Context, id uint) (*T, error) {
	item := new(T)
	if err := s.DB.WithContext(ctx).First(item, id).Error; err != nil {
		return nil, notFound(err, s.Opts.Name)
	}
	return item, nil
}

// GetBySlug looks an item up by its natural key. Public lookups only see
// published or active rows.
func (s *ContentService[T]) GetBySlug(ctx context.Context, key string, public bool) (*T, error) {
	if s.Opts.SlugColumn == "" {
		return nil, notFound(gorm.ErrRecordNotFound, s.Opts.Name)
	}
	key = strings.TrimSpace(key)
	if s.Opts.SlugColumn == "slug" {
		key = strings.ToLower(key)
	}

	item := new(T)
	err := s.scoped(ctx, public).Where(s.Opts.SlugColumn+" = ?", key).First(item).Error
	if err != nil {
		return nil, notFound(err, s.Opts.Name)
	}
	return item, nil
}

func (s *ContentService[T]) Create(ctx context.Context, item *T) (*T, error) {
	if err := s.prepare(item); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(item).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, duplicate("%s already exists", s.Opts.Name)
		}
		return nil, err
	}
	return item, nil
}

// Update overwrites every column of the row except its id and creation time.
func (s *ContentService[T]) Update(ctx context.Context, id uint, item *T) (*T, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.prepare(item); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		Updates(item).Error
	if err != nil {
		if isDuplicateKey(err) {
			return nil, duplicate("%s already exists", s.Opts.Name)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ContentService[T]) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, s.Opts.Name)
	}
	return nil
}

// prepare clears any client supplied id, validates and fills in the slug.
func (s *ContentService[T]) prepare(item *T) error {
	if id := reflect.ValueOf(item).Elem().FieldByName("ID"); id.IsValid() && id.CanSet() {
		id.SetZero()
	}
	if v, ok := any(item).(validator); ok {
		if err := v.Validate(); err != nil {
			return invalid("%v", err)
		}
	}
	if sl, ok := any(item).(sluggable); ok {
		slug := strings.ToLower(strings.TrimSpace(sl.GetSlug()))
		if slug == "" {
			slug = utils.Slugify(sl.SlugSource())
		}
		if !utils.IsValidSlug(slug) {
			return invalid("invalid slug %q", slug)
		}
		sl.SetSlug(slug)
	}
	return nil
}
