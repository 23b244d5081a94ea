package repository

import (
	"context"

	"homecare-admin/internal/domain"
)

// AgenciesRepository Agency 数据访问
type AgenciesRepository interface {
	// GetAgency 返回 domain.ErrNotFound 当 id 不存在
	GetAgency(ctx context.Context, id string) (*domain.Agency, error)
	// CreateAgency assigns a.ID when empty and stamps created_at/updated_at.
	CreateAgency(ctx context.Context, a *domain.Agency) error
	// UpdateAgency replaces every editable field.
	UpdateAgency(ctx context.Context, a *domain.Agency) error
	// DeleteAgency 级联删除 case managers 与 services
	DeleteAgency(ctx context.Context, id string) error
	// ListAgencyOptions 下拉选项，按 name 排序
	ListAgencyOptions(ctx context.Context) ([]domain.AgencyOption, error)
}
