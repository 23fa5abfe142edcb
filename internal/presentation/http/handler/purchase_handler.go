package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kamaug/opshub-api/internal/application/service"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/internal/domain/repository"
	"github.com/kamaug/opshub-api/internal/presentation/http/dto/response"
)

// PurchaseHandler handles purchase order HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// PurchaseItemRequest represents a purchase line item request
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseRequest represents the create purchase request body
type CreatePurchaseRequest struct {
	SupplierID *string               `json:"supplier_id"`
	Date       string                `json:"date"`
	Note       *string               `json:"note"`
	Items      []PurchaseItemRequest `json:"items" binding:"required,min=1"`
}

// Create handles creating a purchase order
// @Summary Create Purchase Order
// @Tags purchases
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	supplierID, err := parseOptionalUUID(req.SupplierID)
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	items := make([]service.PurchaseItemInput, len(req.Items))
	for i, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID in items")
			return
		}
		items[i] = service.PurchaseItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		}
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), &service.CreatePurchaseInput{
		SupplierID: supplierID,
		Date:       date,
		Note:       req.Note,
		Items:      items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase order created successfully", purchase)
}

// List handles listing purchase orders
// @Summary List Purchase Orders
// @Tags purchases
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.APIResponse
// @Router /purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
	params := &repository.PurchaseFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
	}

	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			status := enum.PurchaseStatus(parsed)
			params.Status = &status
		}
	}
	if sid := c.Query("supplier_id"); sid != "" {
		supplierID, err := parseOptionalUUID(&sid)
		if err != nil {
			response.BadRequest(c, "Invalid supplier ID")
			return
		}
		params.SupplierID = supplierID
	}

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchase orders retrieved successfully", result)
}

// Get handles getting a single purchase order
// @Summary Get Purchase Order
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} response.APIResponse
// @Router /purchases/{id} [get]
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order retrieved successfully", purchase)
}

// UpdateStatus handles purchase order status transitions (receive or cancel)
// @Summary Update Purchase Status
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} response.APIResponse
// @Router /purchases/{id}/status [patch]
func (h *PurchaseHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	purchase, err := h.purchaseService.ChangeStatus(c.Request.Context(), id, enum.PurchaseStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase status updated successfully", purchase)
}
