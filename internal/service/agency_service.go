package service

import (
	"context"
	"fmt"

	"homecare-admin/internal/domain"
	"homecare-admin/internal/validation"

	"go.uber.org/zap"
)

// AgencyService Agency 业务
type AgencyService struct {
	Deps
}

func NewAgencyService(d Deps) *AgencyService {
	return &AgencyService{Deps: d}
}

func applyAgency(v validation.Values, a *domain.Agency) {
	a.Name = v.String("name")
	a.ContactPerson = v.StringPtr("contact_person")
	a.Phone = v.StringPtr("phone")
	a.Email = v.StringPtr("email")
	a.Address = v.StringPtr("address")
	a.City = v.StringPtr("city")
	a.State = v.StringPtr("state")
	a.ZipCode = v.StringPtr("zip_code")
	a.LicenseNumber = v.StringPtr("license_number")
	a.IsActive = v.Bool("is_active", true)
}

// Get 返回 Agency 及其 services（含 participant）与 case managers
func (s *AgencyService) Get(ctx context.Context, id string) (*domain.AgencyDetail, error) {
	repos := s.Store.Repos()
	a, err := repos.Agencies.GetAgency(ctx, id)
	if err != nil {
		return nil, err
	}
	services, err := repos.Services.ListServicesByAgency(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load agency services: %w", err)
	}
	cms, err := repos.CaseManagers.ListCaseManagersByAgency(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load agency case managers: %w", err)
	}
	return &domain.AgencyDetail{Agency: *a, Services: services, CaseManagers: cms}, nil
}

func (s *AgencyService) Create(ctx context.Context, in Input) (*domain.Agency, error) {
	v, err := s.validate(ctx, validation.AgencyRules(), in)
	if err != nil {
		return nil, err
	}
	a := &domain.Agency{}
	applyAgency(v, a)
	if err := s.Store.Repos().Agencies.CreateAgency(ctx, a); err != nil {
		return nil, err
	}
	s.logger().Info("Agency created", zap.String("agency_id", a.ID))
	return a, nil
}

func (s *AgencyService) Update(ctx context.Context, id string, in Input) (*domain.Agency, error) {
	repos := s.Store.Repos()
	a, err := repos.Agencies.GetAgency(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := s.validate(ctx, validation.AgencyRules(), in)
	if err != nil {
		return nil, err
	}
	applyAgency(v, a)
	if err := repos.Agencies.UpdateAgency(ctx, a); err != nil {
		return nil, err
	}
	s.logger().Info("Agency updated", zap.String("agency_id", a.ID))
	return a, nil
}

// Delete 级联删除 case managers 与 services
func (s *AgencyService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Repos().Agencies.DeleteAgency(ctx, id); err != nil {
		return err
	}
	s.logger().Info("Agency deleted", zap.String("agency_id", id))
	return nil
}
