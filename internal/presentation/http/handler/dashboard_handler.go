package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kamaug/opshub-api/internal/application/service"
	"github.com/kamaug/opshub-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles getting dashboard statistics
// @Summary Get Dashboard Statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard statistics retrieved successfully", stats)
}
