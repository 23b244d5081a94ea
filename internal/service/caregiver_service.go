package service

import (
	"context"
	"fmt"

	"homecare-admin/internal/domain"
	"homecare-admin/internal/validation"

	"go.uber.org/zap"
)

type CaregiverService struct {
	Deps
}

func NewCaregiverService(d Deps) *CaregiverService {
	return &CaregiverService{Deps: d}
}

func applyCaregiver(v validation.Values, c *domain.Caregiver) {
	c.Name = v.String("name")
	c.Email = v.StringPtr("email")
	c.Phone = v.StringPtr("phone")
	c.IsActive = v.Bool("is_active", true)
	c.Certifications = v.Strings("certifications")
	c.AvailableHours = v.Int("available_hours")
}

// Get 返回 caregiver 及其 services（含 participant、agency 与 pivot）
func (s *CaregiverService) Get(ctx context.Context, id string) (*domain.CaregiverDetail, error) {
	repos := s.Store.Repos()
	c, err := repos.Caregivers.GetCaregiver(ctx, id)
	if err != nil {
		return nil, err
	}
	services, err := repos.Services.ListServicesByCaregiver(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load caregiver services: %w", err)
	}
	return &domain.CaregiverDetail{Caregiver: *c, Services: services}, nil
}

func (s *CaregiverService) Create(ctx context.Context, in Input) (*domain.Caregiver, error) {
	v, err := s.validate(ctx, validation.CaregiverRules(""), in)
	if err != nil {
		return nil, err
	}
	c := &domain.Caregiver{}
	applyCaregiver(v, c)
	if err := s.Store.Repos().Caregivers.CreateCaregiver(ctx, c); err != nil {
		return nil, duplicateAs(err, "email")
	}
	s.logger().Info("Caregiver created", zap.String("caregiver_id", c.ID), zap.Int("available_hours", c.AvailableHours))
	return c, nil
}

func (s *CaregiverService) Update(ctx context.Context, id string, in Input) (*domain.Caregiver, error) {
	repos := s.Store.Repos()
	c, err := repos.Caregivers.GetCaregiver(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := s.validate(ctx, validation.CaregiverRules(id), in)
	if err != nil {
		return nil, err
	}
	applyCaregiver(v, c)
	if err := repos.Caregivers.UpdateCaregiver(ctx, c); err != nil {
		return nil, duplicateAs(err, "email")
	}
	s.logger().Info("Caregiver updated", zap.String("caregiver_id", c.ID))
	return c, nil
}

func (s *CaregiverService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Repos().Caregivers.DeleteCaregiver(ctx, id); err != nil {
		return err
	}
	s.logger().Info("Caregiver deleted", zap.String("caregiver_id", id))
	return nil
}
