package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/kamaug/opshub-api/internal/application/service"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/internal/domain/repository"
	"github.com/kamaug/opshub-api/internal/presentation/http/dto/response"
)

// QuotationHandler handles quotation-related HTTP requests
type QuotationHandler struct {
	quotationService *service.QuotationService
	invoiceService   *service.InvoiceService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(quotationService *service.QuotationService, invoiceService *service.InvoiceService) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
		invoiceService:   invoiceService,
	}
}

// LineItemRequest represents a line item in a quotation or invoice request
type LineItemRequest struct {
	ProductID     *string         `json:"product_id"`
	Description   string          `json:"description" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	SerialNumbers []string        `json:"serial_numbers"`
}

// CreateQuotationRequest represents the create quotation request body
type CreateQuotationRequest struct {
	CustomerID      *string           `json:"customer_id"`
	Date            string            `json:"date"`
	LaborCost       decimal.Decimal   `json:"labor_cost"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	TaxEnabled      *bool             `json:"tax_enabled"`
	Note            *string           `json:"note"`
	Items           []LineItemRequest `json:"items" binding:"required,min=1"`
}

func toLineItemInputs(items []LineItemRequest) ([]service.LineItemInput, error) {
	out := make([]service.LineItemInput, len(items))
	for i, item := range items {
		productID, err := parseOptionalUUID(item.ProductID)
		if err != nil {
			return nil, err
		}
		out[i] = service.LineItemInput{
			ProductID:     productID,
			Description:   item.Description,
			Quantity:      item.Quantity,
			Unit:          item.Unit,
			UnitPrice:     item.UnitPrice,
			TaxRate:       item.TaxRate,
			SerialNumbers: item.SerialNumbers,
		}
	}
	return out, nil
}

// Create handles creating a quotation
// @Summary Create Quotation
// @Tags quotations
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	var req CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customerID, err := parseOptionalUUID(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}
	items, err := toLineItemInputs(req.Items)
	if err != nil {
		response.BadRequest(c, "Invalid product ID in items")
		return
	}

	taxEnabled := true
	if req.TaxEnabled != nil {
		taxEnabled = *req.TaxEnabled
	}

	quotation, err := h.quotationService.CreateQuotation(c.Request.Context(), &service.CreateQuotationInput{
		CustomerID:      customerID,
		Date:            date,
		LaborCost:       req.LaborCost,
		DiscountPercent: req.DiscountPercent,
		TaxEnabled:      taxEnabled,
		Note:            req.Note,
		Items:           items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation created successfully", quotation)
}

// List handles listing quotations
// @Summary List Quotations
// @Tags quotations
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	params := &repository.QuotationFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			status := enum.QuotationStatus(parsed)
			params.Status = &status
		}
	}
	if cid := c.Query("customer_id"); cid != "" {
		customerID, err := parseOptionalUUID(&cid)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		params.CustomerID = customerID
	}

	result, err := h.quotationService.ListQuotations(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotations retrieved successfully", result)
}

// Get handles getting a single quotation
// @Summary Get Quotation
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id} [get]
func (h *QuotationHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	quotation, err := h.quotationService.GetQuotation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation retrieved successfully", quotation)
}

// UpdateStatusRequest represents a status transition request body
type UpdateStatusRequest struct {
	Status int `json:"status" binding:"min=0"`
}

// UpdateStatus handles quotation status transitions
// @Summary Update Quotation Status
// @Tags quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/status [patch]
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quotation, err := h.quotationService.ChangeStatus(c.Request.Context(), id, enum.QuotationStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation status updated successfully", quotation)
}

// Convert handles converting an approved quotation into an invoice
// @Summary Convert Quotation to Invoice
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 201 {object} response.APIResponse
// @Router /quotations/{id}/convert [post]
func (h *QuotationHandler) Convert(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	invoice, err := h.invoiceService.ConvertQuotation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation converted to invoice successfully", invoice)
}

// Delete handles deleting a draft quotation
// @Summary Delete Quotation
// @Tags quotations
// @Param id path string true "Quotation ID"
// @Success 204
// @Router /quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	if err := h.quotationService.DeleteQuotation(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
