package service

import (
	"context"
	"fmt"

	"homecare-admin/internal/domain"
)

type DashboardService struct {
	Deps
}

func NewDashboardService(d Deps) *DashboardService {
	return &DashboardService{Deps: d}
}

// Stats 各实体计数与按状态分组的 service 数
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := s.Store.Repos().Stats.DashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	return stats, nil
}
