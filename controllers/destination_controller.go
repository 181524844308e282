package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travel-backend/logger"
	"travel-backend/middleware"
	"travel-backend/services"
	"travel-backend/utils"
)

type DestinationController struct {
	DestinationSvc *services.DestinationService
	Log            *logger.Logger
}

func NewDestinationController(svc *services.DestinationService, log *logger.Logger) *DestinationController {
	return &DestinationController{DestinationSvc: svc, Log: log}
}

// ListDestinations GET /api/destinations[?featured=true]
func (c *DestinationController) ListDestinations(ctx *gin.Context) {
	list, err := c.DestinationSvc.ListActive(ctx.Request.Context(), ctx.Query("featured") == "true")
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, list)
}

// GetDestinationBySlug GET /api/destinations/:slug
func (c *DestinationController) GetDestinationBySlug(ctx *gin.Context) {
	d, err := c.DestinationSvc.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, d)
}

func (c *DestinationController) AdminListDestinations(ctx *gin.Context) {
	list, err := c.DestinationSvc.List(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, list)
}

func (c *DestinationController) AdminGetDestination(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	d, err := c.DestinationSvc.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, d)
}

func (c *DestinationController) CreateDestination(ctx *gin.Context) {
	var in services.DestinationInput
	if !bindJSON(ctx, &in) {
		return
	}
	d, err := c.DestinationSvc.Create(ctx.Request.Context(), in)
	if err != nil {
		c.Log.LogAdmin(middleware.AdminID(ctx), "create", "destination", 0, err)
		respondError(ctx, c.Log, err)
		return
	}
	c.Log.LogAdmin(middleware.AdminID(ctx), "create", "destination", d.ID, nil)
	utils.JSONSuccess(ctx, http.StatusCreated, d)
}

func (c *DestinationController) UpdateDestination(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	var in services.DestinationInput
	if !bindJSON(ctx, &in) {
		return
	}
	d, err := c.DestinationSvc.Update(ctx.Request.Context(), id, in)
	c.Log.LogAdmin(middleware.AdminID(ctx), "update", "destination", id, err)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, d)
}

// DeleteDestination detaches the destination from its packages and reports
// how many were affected.
func (c *DestinationController) DeleteDestination(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	res, err := c.DestinationSvc.Delete(ctx.Request.Context(), id)
	c.Log.LogAdmin(middleware.AdminID(ctx), "delete", "destination", id, err)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, res)
}
