package repository

import (
	"context"

	"homecare-admin/internal/domain"
)

// CaregiversRepository Caregiver 数据访问
type CaregiversRepository interface {
	GetCaregiver(ctx context.Context, id string) (*domain.Caregiver, error)
	CreateCaregiver(ctx context.Context, c *domain.Caregiver) error
	UpdateCaregiver(ctx context.Context, c *domain.Caregiver) error
	// DeleteCaregiver 级联删除其 service_caregiver 行
	DeleteCaregiver(ctx context.Context, id string) error
	// ListActiveCaregiverOptions 分配表单下拉选项
	ListActiveCaregiverOptions(ctx context.Context) ([]domain.CaregiverOption, error)
}
