package service

import (
	"context"
	"fmt"

	"homecare-admin/internal/domain"
	"homecare-admin/internal/validation"

	"go.uber.org/zap"
)

type CaseManagerService struct {
	Deps
}

func NewCaseManagerService(d Deps) *CaseManagerService {
	return &CaseManagerService{Deps: d}
}

func applyCaseManager(v validation.Values, cm *domain.CaseManager) {
	cm.Name = v.String("name")
	cm.Email = v.String("email")
	cm.Phone = v.StringPtr("phone")
	cm.AgencyID = v.String("agency_id")
}

// Get 返回 case manager 及其 agency 与 participants
func (s *CaseManagerService) Get(ctx context.Context, id string) (*domain.CaseManagerDetail, error) {
	repos := s.Store.Repos()
	cm, err := repos.CaseManagers.GetCaseManager(ctx, id)
	if err != nil {
		return nil, err
	}
	agency, err := repos.Agencies.GetAgency(ctx, cm.AgencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load case manager agency: %w", err)
	}
	participants, err := repos.Participants.ListParticipantsByCaseManager(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load case manager participants: %w", err)
	}
	return &domain.CaseManagerDetail{CaseManager: *cm, Agency: agency, Participants: participants}, nil
}

// FormOptions agencies 按名称排序
func (s *CaseManagerService) FormOptions(ctx context.Context) (*FormOptions, error) {
	agencies, err := s.Store.Repos().Agencies.ListAgencyOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &FormOptions{Agencies: agencies}, nil
}

func (s *CaseManagerService) Create(ctx context.Context, in Input) (*domain.CaseManager, error) {
	v, err := s.validate(ctx, validation.CaseManagerRules(""), in)
	if err != nil {
		return nil, err
	}
	cm := &domain.CaseManager{}
	applyCaseManager(v, cm)
	if err := s.Store.Repos().CaseManagers.CreateCaseManager(ctx, cm); err != nil {
		return nil, duplicateAs(err, "email")
	}
	s.logger().Info("Case manager created", zap.String("case_manager_id", cm.ID), zap.String("agency_id", cm.AgencyID))
	return cm, nil
}

// Update 邮箱唯一性排除自身
func (s *CaseManagerService) Update(ctx context.Context, id string, in Input) (*domain.CaseManager, error) {
	repos := s.Store.Repos()
	cm, err := repos.CaseManagers.GetCaseManager(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := s.validate(ctx, validation.CaseManagerRules(id), in)
	if err != nil {
		return nil, err
	}
	applyCaseManager(v, cm)
	if err := repos.CaseManagers.UpdateCaseManager(ctx, cm); err != nil {
		return nil, duplicateAs(err, "email")
	}
	s.logger().Info("Case manager updated", zap.String("case_manager_id", cm.ID))
	return cm, nil
}

// Delete 关联 participants 的 case_manager_id 置空
func (s *CaseManagerService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Repos().CaseManagers.DeleteCaseManager(ctx, id); err != nil {
		return err
	}
	s.logger().Info("Case manager deleted", zap.String("case_manager_id", id))
	return nil
}
