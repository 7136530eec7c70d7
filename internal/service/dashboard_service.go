package service

import (
	"context"

	"github.com/lakshaya-counselling/assessment-backend/internal/repository"
)

// DashboardService serves aggregate counters for the admin dashboard.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// Stats computes the dashboard counters.
func (s *DashboardService) Stats(ctx context.Context) (*repository.DashboardStats, error) {
	return s.dashboardRepo.Stats(ctx)
}
