package repository

import (
	"context"

	"homecare-admin/internal/domain"
)

// ServicesRepository Service 数据访问；关联对象按读取路径显式加载
type ServicesRepository interface {
	GetService(ctx context.Context, id string) (*domain.Service, error)
	CreateService(ctx context.Context, s *domain.Service) error
	UpdateService(ctx context.Context, s *domain.Service) error
	// DeleteService 级联删除 service_caregiver 行
	DeleteService(ctx context.Context, id string) error

	// ListServicesByAgency services + participant（Agency 详情）
	ListServicesByAgency(ctx context.Context, agencyID string) ([]domain.ServiceWithParticipant, error)
	// ListServicesByParticipant services + agency（Participant 详情、编辑）
	ListServicesByParticipant(ctx context.Context, participantID string) ([]domain.ServiceWithAgency, error)
	// ListServicesByCaregiver services + participant + agency + pivot（Caregiver 详情）
	ListServicesByCaregiver(ctx context.Context, caregiverID string) ([]domain.CaregiverService, error)
}

// AssignmentsRepository service_caregiver 关联表
type AssignmentsRepository interface {
	GetAssignment(ctx context.Context, serviceID, caregiverID string) (*domain.Assignment, error)
	// AttachCaregiver 重复的 (service_id, caregiver_id) 返回 domain.ErrDuplicate
	AttachCaregiver(ctx context.Context, a *domain.Assignment) error
	UpdateAssignedHours(ctx context.Context, serviceID, caregiverID string, hours int) error
	DetachCaregiver(ctx context.Context, serviceID, caregiverID string) error
	// ListCaregiversByService caregivers + pivot，按 caregiver name 排序
	ListCaregiversByService(ctx context.Context, serviceID string) ([]domain.AssignedCaregiver, error)
}
