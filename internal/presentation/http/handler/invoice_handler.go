package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/kamaug/opshub-api/internal/application/service"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/internal/domain/repository"
	"github.com/kamaug/opshub-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	receiptService *service.ReceiptService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, receiptService *service.ReceiptService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		receiptService: receiptService,
	}
}

// CreateInvoiceRequest represents the create invoice request body
type CreateInvoiceRequest struct {
	CustomerID      *string           `json:"customer_id"`
	Date            string            `json:"date"`
	LaborCost       decimal.Decimal   `json:"labor_cost"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	TaxEnabled      *bool             `json:"tax_enabled"`
	Note            *string           `json:"note"`
	Items           []LineItemRequest `json:"items" binding:"required,min=1"`
}

// Create handles creating an invoice from a draft
// @Summary Create Invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
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

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
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

	response.Created(c, "Invoice created successfully", invoice)
}

// List handles listing invoices
// @Summary List Invoices
// @Tags invoices
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	params := &repository.InvoiceFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			status := enum.InvoiceStatus(parsed)
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

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// ListDue handles listing invoices with outstanding balances
// @Summary List Due Invoices
// @Tags invoices
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /invoices/due [get]
func (h *InvoiceHandler) ListDue(c *gin.Context) {
	result, err := h.invoiceService.ListDueInvoices(c.Request.Context(), parsePagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Due invoices retrieved successfully", result)
}

// Get handles getting a single invoice
// @Summary Get Invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// RecordPaymentRequest represents a payment recording request body
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      string          `json:"date"`
	Method    int             `json:"method"`
	Reference *string         `json:"reference"`
}

// RecordPayment handles recording a payment against an invoice
// @Summary Record Payment
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param Idempotency-Key header string false "Idempotency key"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), id, &service.RecordPaymentInput{
		Amount:    req.Amount,
		Date:      date,
		Method:    enum.PaymentMethod(req.Method),
		Reference: req.Reference,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", invoice)
}

// ListPayments returns the payment history of an invoice
// @Summary List Invoice Payments
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/payments [get]
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// UpdateStatus handles invoice status transitions (cancellation only)
// @Summary Update Invoice Status
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	// The only status change exposed over HTTP is cancellation; paid states
	// are reached through the payment ledger alone.
	if enum.InvoiceStatus(req.Status) != enum.InvoiceStatusCancelled {
		response.BadRequest(c, "Invoices can only be cancelled through this endpoint")
		return
	}

	invoice, err := h.invoiceService.CancelInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice cancelled successfully", invoice)
}

// Print handles sending an invoice receipt to the configured thermal printer
// @Summary Print Invoice Receipt
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/print [post]
func (h *InvoiceHandler) Print(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.receiptService.PrintReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", nil)
}

// Receipt handles rendering a printable receipt for an invoice
// @Summary Get Invoice Receipt
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Param format query string false "Format: json, text or escpos"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/receipt [get]
func (h *InvoiceHandler) Receipt(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "escpos":
		data, err := h.receiptService.RenderESCPOS(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Data(200, "application/octet-stream", data)
	case "text":
		text, err := h.receiptService.RenderText(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.String(200, text)
	default:
		receipt, err := h.receiptService.ComposeReceipt(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Receipt composed successfully", receipt)
	}
}
