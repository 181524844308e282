package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travel-backend/logger"
	"travel-backend/services"
	"travel-backend/utils"
)

// respondError maps service errors onto HTTP statuses. Anything unexpected
// is logged and reported without detail.
func respondError(ctx *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrDuplicate), errors.Is(err, services.ErrInUse):
		utils.JSONError(ctx, http.StatusConflict, services.Message(err))
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(ctx, http.StatusBadRequest, services.Message(err))
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(ctx, http.StatusNotFound, services.Message(err))
	default:
		log.WithFields(logger.Fields{
			"method": ctx.Request.Method,
			"path":   ctx.Request.URL.Path,
		}).WithError(err).Error("Request failed")
		utils.JSONError(ctx, http.StatusInternalServerError, "internal server error")
	}
}

// paramID parses the :id path parameter, answering 400 itself on failure.
func paramID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body into dst, answering 400 itself on failure.
func bindJSON(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}

func queryInt(ctx *gin.Context, key string, def int) int {
	if v, err := strconv.Atoi(ctx.Query(key)); err == nil {
		return v
	}
	return def
}
