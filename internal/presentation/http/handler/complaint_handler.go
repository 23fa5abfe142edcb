package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kamaug/opshub-api/internal/application/service"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/internal/domain/repository"
	"github.com/kamaug/opshub-api/internal/presentation/http/dto/response"
)

// ComplaintHandler handles complaint-related HTTP requests
type ComplaintHandler struct {
	complaintService *service.ComplaintService
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaintService *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// CreateComplaintRequest represents the create complaint request body
type CreateComplaintRequest struct {
	CustomerID  *string `json:"customer_id"`
	Subject     string  `json:"subject" binding:"required"`
	Description string  `json:"description"`
}

// Create handles filing a complaint
// @Summary Create Complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /complaints [post]
func (h *ComplaintHandler) Create(c *gin.Context) {
	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customerID, err := parseOptionalUUID(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	complaint, err := h.complaintService.CreateComplaint(c.Request.Context(), &service.CreateComplaintInput{
		CustomerID:  customerID,
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Complaint created successfully", complaint)
}

// List handles listing complaints
// @Summary List Complaints
// @Tags complaints
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Success 200 {object} response.APIResponse
// @Router /complaints [get]
func (h *ComplaintHandler) List(c *gin.Context) {
	params := &repository.ComplaintFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
	}

	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			status := enum.ComplaintStatus(parsed)
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

	result, err := h.complaintService.ListComplaints(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Complaints retrieved successfully", result)
}

// Get handles getting a single complaint
// @Summary Get Complaint
// @Tags complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} response.APIResponse
// @Router /complaints/{id} [get]
func (h *ComplaintHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid complaint ID")
		return
	}

	complaint, err := h.complaintService.GetComplaint(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Complaint retrieved successfully", complaint)
}

// UpdateComplaintStatusRequest represents a complaint status transition request
type UpdateComplaintStatusRequest struct {
	Status     int     `json:"status" binding:"min=0"`
	Resolution *string `json:"resolution"`
}

// UpdateStatus handles complaint status transitions
// @Summary Update Complaint Status
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} response.APIResponse
// @Router /complaints/{id}/status [patch]
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid complaint ID")
		return
	}

	var req UpdateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	complaint, err := h.complaintService.ChangeStatus(c.Request.Context(), id, enum.ComplaintStatus(req.Status), req.Resolution)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Complaint status updated successfully", complaint)
}
