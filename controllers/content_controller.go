package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travel-backend/logger"
	"travel-backend/middleware"
	"travel-backend/services"
	"travel-backend/utils"
)

// ContentController serves one peripheral content type (blogs, reviews,
// FAQs, services, SEO entries) on both the public and admin routers.
type ContentController[T any] struct {
	Svc *services.ContentService[T]
	Log *logger.Logger
	// Filters are the query parameters forwarded to the service as column
	// filters, keyed by query name.
	Filters map[string]string
}

func NewContentController[T any](svc *services.ContentService[T], log *logger.Logger, filters map[string]string) *ContentController[T] {
	return &ContentController[T]{Svc: svc, Log: log, Filters: filters}
}

func (c *ContentController[T]) list(ctx *gin.Context, public bool) {
	filters := make(map[string]string, len(c.Filters))
	for param, column := range c.Filters {
		if v := ctx.Query(param); v != "" {
			filters[column] = v
		}
	}

	page, err := c.Svc.List(ctx.Request.Context(), services.ContentQuery{
		Public:   public,
		Search:   ctx.Query("search"),
		Filters:  filters,
		Page:     queryInt(ctx, "page", 1),
		PageSize: queryInt(ctx, "pageSize", 20),
	})
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONPaged(ctx, http.StatusOK, page.Items, page.Pagination)
}

// PublicList GET /api/<resource>
func (c *ContentController[T]) PublicList(ctx *gin.Context) { c.list(ctx, true) }

// PublicGetBySlug GET /api/<resource>/:slug
func (c *ContentController[T]) PublicGetBySlug(ctx *gin.Context) {
	item, err := c.Svc.GetBySlug(ctx.Request.Context(), ctx.Param("slug"), true)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, item)
}

// PublicGetByPath GET /api/seo?path=/packages
func (c *ContentController[T]) PublicGetByPath(ctx *gin.Context) {
	path := ctx.Query("path")
	if path == "" {
		utils.JSONError(ctx, http.StatusBadRequest, "path is required")
		return
	}
	item, err := c.Svc.GetBySlug(ctx.Request.Context(), path, true)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, item)
}

func (c *ContentController[T]) AdminList(ctx *gin.Context) { c.list(ctx, false) }

func (c *ContentController[T]) AdminGet(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	item, err := c.Svc.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, item)
}

func (c *ContentController[T]) Create(ctx *gin.Context) {
	item := new(T)
	if !bindJSON(ctx, item) {
		return
	}
	created, err := c.Svc.Create(ctx.Request.Context(), item)
	c.Log.LogAdmin(middleware.AdminID(ctx), "create", c.Svc.Opts.Name, 0, err)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, created)
}

func (c *ContentController[T]) Update(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	item := new(T)
	if !bindJSON(ctx, item) {
		return
	}
	updated, err := c.Svc.Update(ctx.Request.Context(), id, item)
	c.Log.LogAdmin(middleware.AdminID(ctx), "update", c.Svc.Opts.Name, id, err)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, updated)
}

func (c *ContentController[T]) Delete(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	err := c.Svc.Delete(ctx.Request.Context(), id)
	c.Log.LogAdmin(middleware.AdminID(ctx), "delete", c.Svc.Opts.Name, id, err)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, gin.H{"id": id})
}
