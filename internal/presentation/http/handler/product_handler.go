package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/kamaug/opshub-api/internal/application/service"
	"github.com/kamaug/opshub-api/internal/domain/repository"
	"github.com/kamaug/opshub-api/internal/presentation/http/dto/response"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest represents the create product request body
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Code          string          `json:"code" binding:"required"`
	Unit          string          `json:"unit"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	StockQuantity int             `json:"stock_quantity"`
	AlertQuantity int             `json:"alert_quantity"`
	Notes         *string         `json:"notes"`
}

// Create handles creating a product
// @Summary Create Product
// @Tags products
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:          req.Name,
		Code:          req.Code,
		Unit:          req.Unit,
		SellingPrice:  req.SellingPrice,
		TaxRate:       req.TaxRate,
		StockQuantity: req.StockQuantity,
		AlertQuantity: req.AlertQuantity,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// List handles listing products
// @Summary List Products
// @Tags products
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Success 200 {object} response.APIResponse
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	params := &repository.ProductFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// ListLowStock handles listing products at or below their alert quantity
// @Summary List Low Stock Products
// @Tags products
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /products/low-stock [get]
func (h *ProductHandler) ListLowStock(c *gin.Context) {
	products, err := h.productService.ListLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// Get handles getting a single product
// @Summary Get Product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.APIResponse
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// UpdateProductRequest represents the update product request body
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Unit          *string          `json:"unit"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
	AlertQuantity *int             `json:"alert_quantity"`
	Notes         *string          `json:"notes"`
}

// Update handles updating a product
// @Summary Update Product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.APIResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &service.UpdateProductInput{
		Name:          req.Name,
		Unit:          req.Unit,
		SellingPrice:  req.SellingPrice,
		TaxRate:       req.TaxRate,
		AlertQuantity: req.AlertQuantity,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
// @Summary Delete Product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
