package service

import (
	"context"
	"errors"
	"fmt"

	"homecare-admin/internal/domain"
	"homecare-admin/internal/validation"

	"go.uber.org/zap"
)

// CareServiceService 管理 Service 记录（participant 与 agency 之间的服务安排）及 caregiver 分配
type CareServiceService struct {
	Deps
}

func NewCareServiceService(d Deps) *CareServiceService {
	return &CareServiceService{Deps: d}
}

// applyService copies every caller supplied field; the standalone flow has no defaults.
func applyService(v validation.Values, s *domain.Service) {
	s.ParticipantID = v.String("participant_id")
	s.AgencyID = v.String("agency_id")
	s.Type = domain.ServiceType(v.String("type"))
	s.WeeklyHours = v.IntPtr("weekly_hours")
	s.WeeklyUnits = v.IntPtr("weekly_units")
	if start, ok := v.Date("start_date"); ok {
		s.StartDate = start
	}
	s.EndDate = v.DatePtr("end_date")
	s.Status = domain.ServiceStatus(v.String("status"))
}

// Get 返回 service、participant、agency 与 caregivers（含 pivot）
func (s *CareServiceService) Get(ctx context.Context, id string) (*domain.ServiceDetail, error) {
	repos := s.Store.Repos()
	svc, err := repos.Services.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	participant, err := repos.Participants.GetParticipant(ctx, svc.ParticipantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service participant: %w", err)
	}
	agency, err := repos.Agencies.GetAgency(ctx, svc.AgencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service agency: %w", err)
	}
	caregivers, err := repos.Assignments.ListCaregiversByService(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load service caregivers: %w", err)
	}
	return &domain.ServiceDetail{Service: *svc, Participant: participant, Agency: agency, Caregivers: caregivers}, nil
}

// FormOptions active participants、agencies、以及可分配的 active caregivers
func (s *CareServiceService) FormOptions(ctx context.Context) (*FormOptions, error) {
	repos := s.Store.Repos()
	participants, err := repos.Participants.ListActiveParticipantOptions(ctx)
	if err != nil {
		return nil, err
	}
	agencies, err := repos.Agencies.ListAgencyOptions(ctx)
	if err != nil {
		return nil, err
	}
	caregivers, err := repos.Caregivers.ListActiveCaregiverOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &FormOptions{
		Participants:    participants,
		Agencies:        agencies,
		Caregivers:      caregivers,
		ServiceTypes:    enumOptions(domain.ServiceTypes),
		ServiceStatuses: enumOptions(domain.ServiceStatuses),
	}, nil
}

func (s *CareServiceService) Create(ctx context.Context, in Input) (*domain.Service, error) {
	v, err := s.validate(ctx, validation.ServiceRules(), in)
	if err != nil {
		return nil, err
	}
	svc := &domain.Service{}
	applyService(v, svc)
	if err := s.Store.Repos().Services.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	s.logger().Info("Service created",
		zap.String("service_id", svc.ID),
		zap.String("participant_id", svc.ParticipantID),
		zap.String("type", string(svc.Type)),
	)
	return svc, nil
}

// Update status 可任意切换，不校验状态迁移
func (s *CareServiceService) Update(ctx context.Context, id string, in Input) (*domain.Service, error) {
	repos := s.Store.Repos()
	svc, err := repos.Services.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := s.validate(ctx, validation.ServiceRules(), in)
	if err != nil {
		return nil, err
	}
	applyService(v, svc)
	if err := repos.Services.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	s.logger().Info("Service updated", zap.String("service_id", svc.ID), zap.String("status", string(svc.Status)))
	return svc, nil
}

func (s *CareServiceService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Repos().Services.DeleteService(ctx, id); err != nil {
		return err
	}
	s.logger().Info("Service deleted", zap.String("service_id", id))
	return nil
}

// AssignCaregiver attaches a caregiver to the service. A pair that already exists is
// reported as a field error on caregiver_id.
func (s *CareServiceService) AssignCaregiver(ctx context.Context, serviceID string, in Input) (*domain.Assignment, error) {
	repos := s.Store.Repos()
	if _, err := repos.Services.GetService(ctx, serviceID); err != nil {
		return nil, err
	}
	v, err := s.validate(ctx, validation.AssignmentRules(), in)
	if err != nil {
		return nil, err
	}
	a := &domain.Assignment{
		ServiceID:     serviceID,
		CaregiverID:   v.String("caregiver_id"),
		AssignedHours: v.Int("assigned_hours"),
	}
	if err := repos.Assignments.AttachCaregiver(ctx, a); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, validation.NewError("caregiver_id", "The caregiver is already assigned to this service.")
		}
		return nil, err
	}
	s.logger().Info("Caregiver assigned",
		zap.String("service_id", serviceID),
		zap.String("caregiver_id", a.CaregiverID),
		zap.Int("assigned_hours", a.AssignedHours),
	)
	return a, nil
}

func (s *CareServiceService) UpdateAssignment(ctx context.Context, serviceID, caregiverID string, in Input) (*domain.Assignment, error) {
	repos := s.Store.Repos()
	if _, err := repos.Assignments.GetAssignment(ctx, serviceID, caregiverID); err != nil {
		return nil, err
	}
	v, err := s.validate(ctx, validation.AssignmentUpdateRules(), in)
	if err != nil {
		return nil, err
	}
	if err := repos.Assignments.UpdateAssignedHours(ctx, serviceID, caregiverID, v.Int("assigned_hours")); err != nil {
		return nil, err
	}
	return repos.Assignments.GetAssignment(ctx, serviceID, caregiverID)
}

func (s *CareServiceService) UnassignCaregiver(ctx context.Context, serviceID, caregiverID string) error {
	if err := s.Store.Repos().Assignments.DetachCaregiver(ctx, serviceID, caregiverID); err != nil {
		return err
	}
	s.logger().Info("Caregiver unassigned", zap.String("service_id", serviceID), zap.String("caregiver_id", caregiverID))
	return nil
}
