package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/servex/backend/internal/application/settings"
)

// SettingsHandler handles tenant settings endpoints
type SettingsHandler struct {
	BaseHandler
	currencyService *settings.CurrencyService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(currencyService *settings.CurrencyService) *SettingsHandler {
	return &SettingsHandler{currencyService: currencyService}
}

// GetCurrencies returns the tenant's currency table
func (h *SettingsHandler) GetCurrencies(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	currencies, err := h.currencyService.Get(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, currencies)
}

// UpdateCurrencies replaces the tenant's currency table
func (h *SettingsHandler) UpdateCurrencies(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	var req settings.UpdateCurrenciesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	currencies, err := h.currencyService.Update(c.Request.Context(), tenantID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, currencies)
}
