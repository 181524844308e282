package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travel-backend/logger"
	"travel-backend/middleware"
	"travel-backend/services"
	"travel-backend/utils"
)

type CurrencyController struct {
	CurrencySvc *services.CurrencyService
	Log         *logger.Logger
}

func NewCurrencyController(svc *services.CurrencyService, log *logger.Logger) *CurrencyController {
	return &CurrencyController{CurrencySvc: svc, Log: log}
}

// ListCurrencies GET /api/currencies (active only, default first)
func (c *CurrencyController) ListCurrencies(ctx *gin.Context) {
	list, err := c.CurrencySvc.ListActive(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, list)
}

func (c *CurrencyController) AdminListCurrencies(ctx *gin.Context) {
	list, err := c.CurrencySvc.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, list)
}

func (c *CurrencyController) AdminGetCurrency(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	cur, err := c.CurrencySvc.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, cur)
}

func (c *CurrencyController) CreateCurrency(ctx *gin.Context) {
	var in services.CurrencyInput
	if !bindJSON(ctx, &in) {
		return
	}
	cur, err := c.CurrencySvc.Create(ctx.Request.Context(), in)
	if err != nil {
		c.Log.LogAdmin(middleware.AdminID(ctx), "create", "currency", 0, err)
		respondError(ctx, c.Log, err)
		return
	}
	c.Log.LogAdmin(middleware.AdminID(ctx), "create", "currency", cur.ID, nil)
	utils.JSONSuccess(ctx, http.StatusCreated, cur)
}

func (c *CurrencyController) UpdateCurrency(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	var in services.CurrencyInput
	if !bindJSON(ctx, &in) {
		return
	}
	cur, err := c.CurrencySvc.Update(ctx.Request.Context(), id, in)
	c.Log.LogAdmin(middleware.AdminID(ctx), "update", "currency", id, err)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, cur)
}

// DeleteCurrency answers 409 while any package price still uses the currency.
func (c *CurrencyController) DeleteCurrency(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	err := c.CurrencySvc.Delete(ctx.Request.Context(), id)
	c.Log.LogAdmin(middleware.AdminID(ctx), "delete", "currency", id, err)
	if err != nil {
		respondError(ctx, c.Log, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, gin.H{"id": id})
}
