package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"travel-backend/logger"
	"travel-backend/middleware"
	"travel-backend/services"
	"travel-backend/utils"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type uploadPayload struct {
	Image  string `json:"image"`
	Folder string `json:"folder"`
}

// AdminController covers the admin shell: login, profile, dashboard,
// notifications and image uploads.
type AdminController struct {
	AuthSvc      *services.AuthService
	DashboardSvc *services.DashboardService
	ImageSvc     *services.ImageService
	Log          *logger.Logger
}

func NewAdminController(auth *services.AuthService, dashboard *services.DashboardService, images *services.ImageService, log *logger.Logger) *AdminController {
	return &AdminController{AuthSvc: auth, DashboardSvc: dashboard, ImageSvc: images, Log: log}
}

// Login POST /api/auth/login
func (c *AdminController) Login(ctx *gin.Context) {
	var payload loginPayload
	if !bindJSON(ctx, &payload) {
		return
	}

	res, err := c.AuthSvc.Login(ctx.Request.Context(), payload.Username, payload.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.Log.LogSecurity("login_failed", ctx.ClientIP(), logger.Fields{"username": payload.Username})
		utils.JSONError(ctx, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, res)
}

// Me GET /api/admin/me
func (c *AdminController) Me(ctx *gin.Context) {
	admin, err := c.AuthSvc.Me(ctx.Request.Context(), middleware.AdminID(ctx))
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, admin)
}

// DashboardCounts GET /api/admin/dashboard/counts
func (c *AdminController) DashboardCounts(ctx *gin.Context) {
	counts, err := c.DashboardSvc.Counts(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, counts)
}

// Notifications GET /api/admin/notifications?since=RFC3339&limit=
func (c *AdminController) Notifications(ctx *gin.Context) {
	var since *time.Time
	if raw := ctx.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.JSONError(ctx, http.StatusBadRequest, "since must be an RFC3339 timestamp")
			return
		}
		since = &t
	}

	feed, err := c.DashboardSvc.Notifications(ctx.Request.Context(), since, queryInt(ctx, "limit", 10))
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, feed)
}

// UploadImage POST /api/admin/uploads {image, folder}
func (c *AdminController) UploadImage(ctx *gin.Context) {
	var payload uploadPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	img, err := c.ImageSvc.SaveBase64(payload.Image, payload.Folder)
	c.Log.LogAdmin(middleware.AdminID(ctx), "upload", "image", 0, err)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, img)
}
