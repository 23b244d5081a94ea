package service

import (
	"context"
	"fmt"
	"strings"

	"homecare-admin/internal/domain"
	"homecare-admin/internal/repository"
	"homecare-admin/internal/validation"

	"go.uber.org/zap"
)

// 嵌套 service 默认值：开始日期为今天，结束日期为一年后，状态 pending
const defaultServiceYears = 1

type ParticipantService struct {
	Deps
}

func NewParticipantService(d Deps) *ParticipantService {
	return &ParticipantService{Deps: d}
}

func applyParticipant(v validation.Values, p *domain.Participant) {
	p.Name = v.String("name")
	p.MedicaidID = v.String("medicaid_id")
	p.Gender = domain.Gender(v.String("gender"))
	if dob, ok := v.Date("dob"); ok {
		p.DOB = dob
	}
	p.Address = v.String("address")
	p.PrimaryPhone = v.String("primary_phone")
	p.SecondaryPhone = v.StringPtr("secondary_phone")
	p.Community = v.StringPtr("community")
	p.IsActive = v.Bool("is_active", true)
	p.CaseManagerID = v.StringPtr("case_manager_id")
}

// CreateParticipantResponse 新建的 participant 与随之创建的 services
type CreateParticipantResponse struct {
	Participant *domain.Participant `json:"participant"`
	Services    []domain.Service    `json:"services"`
}

// Get 返回 participant、case manager（含 agency）与 services（含 agency）
func (s *ParticipantService) Get(ctx context.Context, id string) (*domain.ParticipantDetail, error) {
	repos := s.Store.Repos()
	p, err := repos.Participants.GetParticipant(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &domain.ParticipantDetail{Participant: *p}

	if p.CaseManagerID != nil {
		cm, err := repos.CaseManagers.GetCaseManager(ctx, *p.CaseManagerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load participant case manager: %w", err)
		}
		agency, err := repos.Agencies.GetAgency(ctx, cm.AgencyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load case manager agency: %w", err)
		}
		detail.CaseManager = &domain.CaseManagerWithAgency{CaseManager: *cm, Agency: agency}
	}

	services, err := repos.Services.ListServicesByParticipant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load participant services: %w", err)
	}
	detail.Services = services
	return detail, nil
}

func (s *ParticipantService) FormOptions(ctx context.Context) (*FormOptions, error) {
	repos := s.Store.Repos()
	cms, err := repos.CaseManagers.ListCaseManagerOptions(ctx)
	if err != nil {
		return nil, err
	}
	agencies, err := repos.Agencies.ListAgencyOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &FormOptions{
		CaseManagers: cms,
		Agencies:     agencies,
		Genders:      enumOptions(domain.Genders),
		ServiceTypes: enumOptions(domain.ServiceTypes),
	}, nil
}

// Create validates the participant and its optional services[] first, then writes every row in
// one transaction: either all commit or none do.
func (s *ParticipantService) Create(ctx context.Context, in Input) (*CreateParticipantResponse, error) {
	v, err := s.validate(ctx, validation.ParticipantRules("", true), in)
	if err != nil {
		return nil, err
	}

	p := &domain.Participant{}
	applyParticipant(v, p)

	today := domain.NewDate(s.now())
	nested := v.Objects("services")
	services := make([]domain.Service, 0, len(nested))
	for _, sv := range nested {
		svc := domain.Service{
			AgencyID:    sv.String("agency_id"),
			Type:        domain.ServiceType(sv.String("type")),
			WeeklyHours: sv.IntPtr("weekly_hours"),
			WeeklyUnits: sv.IntPtr("weekly_units"),
			StartDate:   today,
			Status:      domain.ServiceStatusPending,
		}
		if start, ok := sv.Date("start_date"); ok {
			svc.StartDate = start
		}
		end := today.AddYears(defaultServiceYears)
		if e := sv.DatePtr("end_date"); e != nil {
			end = *e
		}
		svc.EndDate = &end
		services = append(services, svc)
	}

	err = s.Store.WithinTx(ctx, func(r *repository.Repositories) error {
		if err := r.Participants.CreateParticipant(ctx, p); err != nil {
			return duplicateAs(err, "medicaid_id")
		}
		for i := range services {
			services[i].ParticipantID = p.ID
			if err := r.Services.CreateService(ctx, &services[i]); err != nil {
				return fmt.Errorf("failed to create service %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger().Warn("Participant create rolled back", zap.Error(err))
		return nil, err
	}

	s.logger().Info("Participant created",
		zap.String("participant_id", p.ID),
		zap.Int("services_count", len(services)),
	)
	return &CreateParticipantResponse{Participant: p, Services: services}, nil
}

// Update 不处理 services[]（service 通过自身资源维护）
func (s *ParticipantService) Update(ctx context.Context, id string, in Input) (*domain.Participant, error) {
	repos := s.Store.Repos()
	p, err := repos.Participants.GetParticipant(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := s.validate(ctx, validation.ParticipantRules(id, false), in)
	if err != nil {
		return nil, err
	}
	applyParticipant(v, p)
	if err := repos.Participants.UpdateParticipant(ctx, p); err != nil {
		return nil, duplicateAs(err, "medicaid_id")
	}
	s.logger().Info("Participant updated", zap.String("participant_id", p.ID))
	return p, nil
}

func (s *ParticipantService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Repos().Participants.DeleteParticipant(ctx, id); err != nil {
		return err
	}
	s.logger().Info("Participant deleted", zap.String("participant_id", id))
	return nil
}

func enumOptions[T ~string](values []T) []domain.EnumOption {
	out := make([]domain.EnumOption, 0, len(values))
	for _, v := range values {
		label := string(v)
		if label != "" {
			label = strings.ToUpper(label[:1]) + label[1:]
		}
		out = append(out, domain.EnumOption{Value: string(v), Label: label})
	}
	return out
}
