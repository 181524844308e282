package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travel-backend/logger"
	"travel-backend/middleware"
	"travel-backend/services"
	"travel-backend/utils"
)

type EnquiryController struct {
	EnquirySvc *services.EnquiryService
	Log        *logger.Logger
}

func NewEnquiryController(svc *services.EnquiryService, log *logger.Logger) *EnquiryController {
	return &EnquiryController{EnquirySvc: svc, Log: log}
}

// SubmitEnquiry POST /api/enquiries
func (c *EnquiryController) SubmitEnquiry(ctx *gin.Context) {
	var in services.EnquiryInput
	if !bindJSON(ctx, &in) {
		return
	}
	e, err := c.EnquirySvc.Submit(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, gin.H{
		"id":      e.ID,
		"status":  e.Status,
		"message": "Thank you! Our travel experts will contact you shortly.",
	})
}

// ListEnquiries GET /api/admin/enquiries?status=&search=&page=
func (c *EnquiryController) ListEnquiries(ctx *gin.Context) {
	result, err := c.EnquirySvc.List(ctx.Request.Context(), services.EnquiryFilter{
		Status:   ctx.Query("status"),
		Search:   ctx.Query("search"),
		Page:     queryInt(ctx, "page", 1),
		PageSize: queryInt(ctx, "pageSize", 20),
	})
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONPaged(ctx, http.StatusOK, result.Enquiries, result.Pagination)
}

func (c *EnquiryController) GetEnquiry(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	e, err := c.EnquirySvc.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, e)
}

// UpdateEnquiry PATCH /api/admin/enquiries/:id {status, notes}
func (c *EnquiryController) UpdateEnquiry(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	var in services.EnquiryUpdate
	if !bindJSON(ctx, &in) {
		return
	}
	e, err := c.EnquirySvc.UpdateStatus(ctx.Request.Context(), id, in)
	c.Log.LogAdmin(middleware.AdminID(ctx), "update_status", "enquiry", id, err)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, e)
}

func (c *EnquiryController) DeleteEnquiry(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	err := c.EnquirySvc.Delete(ctx.Request.Context(), id)
	c.Log.LogAdmin(middleware.AdminID(ctx), "delete", "enquiry", id, err)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, gin.H{"id": id})
}
