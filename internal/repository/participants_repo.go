package repository

import (
	"context"

	"homecare-admin/internal/domain"
)

// ParticipantsRepository Participant 数据访问
type ParticipantsRepository interface {
	GetParticipant(ctx context.Context, id string) (*domain.Participant, error)
	CreateParticipant(ctx context.Context, p *domain.Participant) error
	UpdateParticipant(ctx context.Context, p *domain.Participant) error
	// DeleteParticipant 级联删除其 services
	DeleteParticipant(ctx context.Context, id string) error

	ListParticipantsByCaseManager(ctx context.Context, caseManagerID string) ([]domain.Participant, error)
	// ListActiveParticipantOptions 仅 is_active = true，按 name 排序（service 表单）
	ListActiveParticipantOptions(ctx context.Context) ([]domain.ParticipantOption, error)
}
