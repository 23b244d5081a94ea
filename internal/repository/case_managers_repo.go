package repository

import (
	"context"

	"homecare-admin/internal/domain"
)

// CaseManagersRepository CaseManager 数据访问
type CaseManagersRepository interface {
	GetCaseManager(ctx context.Context, id string) (*domain.CaseManager, error)
	CreateCaseManager(ctx context.Context, cm *domain.CaseManager) error
	UpdateCaseManager(ctx context.Context, cm *domain.CaseManager) error
	// DeleteCaseManager 引用它的 participants.case_manager_id 置 NULL
	DeleteCaseManager(ctx context.Context, id string) error

	// ListCaseManagersByAgency 按 name 排序
	ListCaseManagersByAgency(ctx context.Context, agencyID string) ([]domain.CaseManager, error)
	// ListCaseManagerOptions returns "Name (Agency)" options ordered by name.
	ListCaseManagerOptions(ctx context.Context) ([]domain.CaseManagerOption, error)
}
