package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travel-backend/logger"
	"travel-backend/middleware"
	"travel-backend/query"
	"travel-backend/services"
	"travel-backend/utils"
)

type PackageController struct {
	PackageSvc *services.PackageService
	FilterSvc  *services.FilterOptionsService
	Writer     *services.PackageWriter
	Log        *logger.Logger
}

func NewPackageController(pkgSvc *services.PackageService, filterSvc *services.FilterOptionsService, writer *services.PackageWriter, log *logger.Logger) *PackageController {
	return &PackageController{PackageSvc: pkgSvc, FilterSvc: filterSvc, Writer: writer, Log: log}
}

// ListPackages GET /api/packages
func (c *PackageController) ListPackages(ctx *gin.Context) {
	filters := query.FiltersFromValues(ctx.Request.URL.Query())
	page := queryInt(ctx, "page", 1)

	result, err := c.PackageSvc.List(ctx.Request.Context(), filters, page)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	options, err := c.FilterSvc.Options(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}

	utils.JSONSuccess(ctx, http.StatusOK, gin.H{
		"packages":   result.Packages,
		"pagination": result.Pagination,
		"filters":    options,
	})
}

// FilterOptions GET /api/packages/filter-options
func (c *PackageController) FilterOptions(ctx *gin.Context) {
	options, err := c.FilterSvc.Options(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, options)
}

// HomeRails GET /api/packages/featured returns the featured, special and
// popular rails of the home page.
func (c *PackageController) HomeRails(ctx *gin.Context) {
	limit := queryInt(ctx, "limit", 6)
	reqCtx := ctx.Request.Context()

	featured, err := c.PackageSvc.Featured(reqCtx, limit)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	special, err := c.PackageSvc.Special(reqCtx, limit)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	popular, err := c.PackageSvc.Popular(reqCtx, limit)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}

	utils.JSONSuccess(ctx, http.StatusOK, gin.H{
		"featured": featured,
		"special":  special,
		"popular":  popular,
	})
}

// GetPackageBySlug GET /api/packages/:slug
func (c *PackageController) GetPackageBySlug(ctx *gin.Context) {
	pkg, err := c.PackageSvc.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, pkg)
}

// AdminListPackages GET /api/admin/packages
func (c *PackageController) AdminListPackages(ctx *gin.Context) {
	result, err := c.PackageSvc.ListAdmin(
		ctx.Request.Context(),
		ctx.Query("search"),
		ctx.Query("category"),
		queryInt(ctx, "page", 1),
		queryInt(ctx, "pageSize", 20),
	)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONPaged(ctx, http.StatusOK, result.Packages, result.Pagination)
}

// AdminGetPackage GET /api/admin/packages/:id
func (c *PackageController) AdminGetPackage(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	pkg, err := c.PackageSvc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, pkg)
}

// CreatePackage POST /api/admin/packages
func (c *PackageController) CreatePackage(ctx *gin.Context) {
	var payload services.PackagePayload
	if !bindJSON(ctx, &payload) {
		return
	}

	pkg, err := c.Writer.Create(ctx.Request.Context(), payload)
	if err != nil {
		c.Log.LogAdmin(middleware.AdminID(ctx), "create", "package", 0, err)
		respondError(ctx, c.Log, err)
		return
	}
	c.Log.LogAdmin(middleware.AdminID(ctx), "create", "package", pkg.ID, nil)
	utils.JSONSuccess(ctx, http.StatusCreated, pkg)
}

// UpdatePackage PUT /api/admin/packages/:id
func (c *PackageController) UpdatePackage(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	var payload services.PackagePayload
	if !bindJSON(ctx, &payload) {
		return
	}

	pkg, err := c.Writer.Update(ctx.Request.Context(), id, payload)
	c.Log.LogAdmin(middleware.AdminID(ctx), "update", "package", id, err)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, pkg)
}

// DeletePackage DELETE /api/admin/packages/:id
func (c *PackageController) DeletePackage(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	err := c.Writer.Delete(ctx.Request.Context(), id)
	c.Log.LogAdmin(middleware.AdminID(ctx), "delete", "package", id, err)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, gin.H{"id": id})
}

// SetPackageFlags PATCH /api/admin/packages/:id/flags
func (c *PackageController) SetPackageFlags(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	var flags services.PackageFlags
	if !bindJSON(ctx, &flags) {
		return
	}

	pkg, err := c.Writer.SetFlags(ctx.Request.Context(), id, flags)
	c.Log.LogAdmin(middleware.AdminID(ctx), "set_flags", "package", id, err)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, pkg)
}

// ExportPackage GET /api/admin/packages/:id/export
func (c *PackageController) ExportPackage(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	export, err := c.PackageSvc.Export(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, export)
}
