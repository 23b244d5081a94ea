package repository

import (
	"context"
	"fmt"

	"homecare-admin/internal/common/database"
	"homecare-admin/internal/domain"
)

type SQLServicesRepository struct {
	db database.Conn
}

func NewSQLServicesRepository(db database.Conn) *SQLServicesRepository {
	return &SQLServicesRepository{db: db}
}

var _ ServicesRepository = (*SQLServicesRepository)(nil)

const serviceColumns = `services.id, services.participant_id, services.agency_id, services.type,
	services.weekly_hours, services.weekly_units, services.start_date, services.end_date,
	services.status, services.created_at, services.updated_at`

// serviceRow scans the nullable end_date through domain.NullDate.
type serviceRow struct {
	s   domain.Service
	end domain.NullDate
}

func (row *serviceRow) fields() []any {
	s := &row.s
	return []any{
		&s.ID, &s.ParticipantID, &s.AgencyID, &s.Type,
		&s.WeeklyHours, &s.WeeklyUnits, &s.StartDate, &row.end,
		&s.Status, &s.CreatedAt, &s.UpdatedAt,
	}
}

func (row *serviceRow) service() domain.Service {
	row.s.EndDate = row.end.Ptr()
	return row.s
}

func dateArg(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return *d
}

func (r *SQLServicesRepository) GetService(ctx context.Context, id string) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE services.id = ?`
	var row serviceRow
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(query), id).Scan(row.fields()...); err != nil {
		return nil, mapError("get service", err)
	}
	s := row.service()
	return &s, nil
}

func (r *SQLServicesRepository) CreateService(ctx context.Context, s *domain.Service) error {
	domain.EnsureID(&s.ID)
	now := nowUTC()
	s.CreatedAt, s.UpdatedAt = now, now
	if s.Status == "" {
		s.Status = domain.ServiceStatusPending
	}

	query := `
		INSERT INTO services (
			id, participant_id, agency_id, type, weekly_hours, weekly_units,
			start_date, end_date, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		s.ID, s.ParticipantID, s.AgencyID, string(s.Type), s.WeeklyHours, s.WeeklyUnits,
		s.StartDate, dateArg(s.EndDate), string(s.Status), s.CreatedAt, s.UpdatedAt,
	)
	return mapError("create service", err)
}

func (r *SQLServicesRepository) UpdateService(ctx context.Context, s *domain.Service) error {
	s.UpdatedAt = nowUTC()
	query := `
		UPDATE services SET
			participant_id = ?, agency_id = ?, type = ?, weekly_hours = ?, weekly_units = ?,
			start_date = ?, end_date = ?, status = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		s.ParticipantID, s.AgencyID, string(s.Type), s.WeeklyHours, s.WeeklyUnits,
		s.StartDate, dateArg(s.EndDate), string(s.Status), s.UpdatedAt, s.ID,
	)
	if err != nil {
		return mapError("update service", err)
	}
	return requireAffected("update service", res)
}

func (r *SQLServicesRepository) DeleteService(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM services WHERE id = ?`), id)
	if err != nil {
		return mapError("delete service", err)
	}
	return requireAffected("delete service", res)
}

func (r *SQLServicesRepository) ListServicesByAgency(ctx context.Context, agencyID string) ([]domain.ServiceWithParticipant, error) {
	query := `
		SELECT ` + serviceColumns + `, ` + participantColumns + `
		FROM services
		JOIN participants ON participants.id = services.participant_id
		WHERE services.agency_id = ?
		ORDER BY services.start_date DESC, services.id
	`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), agencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services by agency: %w", err)
	}
	defer rows.Close()

	out := []domain.ServiceWithParticipant{}
	for rows.Next() {
		var (
			row serviceRow
			p   domain.Participant
		)
		if err := rows.Scan(append(row.fields(), participantFields(&p)...)...); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		out = append(out, domain.ServiceWithParticipant{Service: row.service(), Participant: &p})
	}
	return out, rows.Err()
}

func (r *SQLServicesRepository) ListServicesByParticipant(ctx context.Context, participantID string) ([]domain.ServiceWithAgency, error) {
	query := `
		SELECT ` + serviceColumns + `, ` + agencyColumns + `
		FROM services
		JOIN agencies ON agencies.id = services.agency_id
		WHERE services.participant_id = ?
		ORDER BY services.start_date DESC, services.id
	`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services by participant: %w", err)
	}
	defer rows.Close()

	out := []domain.ServiceWithAgency{}
	for rows.Next() {
		var (
			row serviceRow
			a   domain.Agency
		)
		if err := rows.Scan(append(row.fields(), agencyFields(&a)...)...); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		out = append(out, domain.ServiceWithAgency{Service: row.service(), Agency: &a})
	}
	return out, rows.Err()
}

func (r *SQLServicesRepository) ListServicesByCaregiver(ctx context.Context, caregiverID string) ([]domain.CaregiverService, error) {
	query := `
		SELECT ` + serviceColumns + `, ` + participantColumns + `, ` + agencyColumns + `, ` + assignmentColumns + `
		FROM service_caregiver
		JOIN services ON services.id = service_caregiver.service_id
		JOIN participants ON participants.id = services.participant_id
		JOIN agencies ON agencies.id = services.agency_id
		WHERE service_caregiver.caregiver_id = ?
		ORDER BY services.start_date DESC, services.id
	`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), caregiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services by caregiver: %w", err)
	}
	defer rows.Close()

	out := []domain.CaregiverService{}
	for rows.Next() {
		var (
			row   serviceRow
			p     domain.Participant
			a     domain.Agency
			pivot domain.Assignment
		)
		dest := append(row.fields(), participantFields(&p)...)
		dest = append(dest, agencyFields(&a)...)
		dest = append(dest, assignmentFields(&pivot)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan caregiver service: %w", err)
		}
		out = append(out, domain.CaregiverService{Service: row.service(), Participant: &p, Agency: &a, Pivot: pivot})
	}
	return out, rows.Err()
}
