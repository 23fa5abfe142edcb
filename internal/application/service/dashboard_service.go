package service

import (
	"context"

	"github.com/kamaug/opshub-api/internal/domain/repository"
)

// DashboardService provides the aggregate figures for the dashboard
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo}
}

// GetStats returns the dashboard statistics
func (s *DashboardService) GetStats(ctx context.Context) (*repository.DashboardStats, error) {
	return s.analyticsRepo.GetDashboardStats(ctx)
}
