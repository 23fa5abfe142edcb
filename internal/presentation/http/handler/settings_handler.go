package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/kamaug/opshub-api/internal/application/service"
	"github.com/kamaug/opshub-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles business settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles getting the business settings
// @Summary Get Settings
// @Tags settings
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettingsRequest represents the update settings request body
type UpdateSettingsRequest struct {
	StoreName    string          `json:"store_name" binding:"required"`
	Address      *string         `json:"address"`
	Phone        *string         `json:"phone"`
	TaxID        *string         `json:"tax_id"`
	CurrencyCode string          `json:"currency_code" binding:"required,len=3"`
	LaborTaxRate decimal.Decimal `json:"labor_tax_rate"`
	PrinterWidth int             `json:"printer_width"`
}

// Update handles updating the business settings
// @Summary Update Settings
// @Tags settings
// @Accept json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		StoreName:    req.StoreName,
		Address:      req.Address,
		Phone:        req.Phone,
		TaxID:        req.TaxID,
		CurrencyCode: req.CurrencyCode,
		LaborTaxRate: req.LaborTaxRate,
		PrinterWidth: req.PrinterWidth,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
