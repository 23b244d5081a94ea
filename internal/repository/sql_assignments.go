package repository

import (
	"context"
	"fmt"

	"homecare-admin/internal/common/database"
	"homecare-admin/internal/domain"
)

type SQLAssignmentsRepository struct {
	db database.Conn
}

func NewSQLAssignmentsRepository(db database.Conn) *SQLAssignmentsRepository {
	return &SQLAssignmentsRepository{db: db}
}

var _ AssignmentsRepository = (*SQLAssignmentsRepository)(nil)

const assignmentColumns = `service_caregiver.service_id, service_caregiver.caregiver_id, service_caregiver.assigned_hours,
	service_caregiver.assigned_at, service_caregiver.created_at, service_caregiver.updated_at`

func assignmentFields(a *domain.Assignment) []any {
	return []any{&a.ServiceID, &a.CaregiverID, &a.AssignedHours, &a.AssignedAt, &a.CreatedAt, &a.UpdatedAt}
}

func (r *SQLAssignmentsRepository) GetAssignment(ctx context.Context, serviceID, caregiverID string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM service_caregiver
		WHERE service_caregiver.service_id = ? AND service_caregiver.caregiver_id = ?`
	var a domain.Assignment
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(query), serviceID, caregiverID).Scan(assignmentFields(&a)...); err != nil {
		return nil, mapError("get assignment", err)
	}
	return &a, nil
}

func (r *SQLAssignmentsRepository) AttachCaregiver(ctx context.Context, a *domain.Assignment) error {
	now := nowUTC()
	if a.AssignedAt.IsZero() {
		a.AssignedAt = now
	}
	a.CreatedAt, a.UpdatedAt = now, now

	query := `
		INSERT INTO service_caregiver (service_id, caregiver_id, assigned_hours, assigned_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		a.ServiceID, a.CaregiverID, a.AssignedHours, a.AssignedAt, a.CreatedAt, a.UpdatedAt)
	return mapError("attach caregiver", err)
}

func (r *SQLAssignmentsRepository) UpdateAssignedHours(ctx context.Context, serviceID, caregiverID string, hours int) error {
	query := `UPDATE service_caregiver SET assigned_hours = ?, updated_at = ? WHERE service_id = ? AND caregiver_id = ?`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), hours, nowUTC(), serviceID, caregiverID)
	if err != nil {
		return mapError("update assignment", err)
	}
	return requireAffected("update assignment", res)
}

func (r *SQLAssignmentsRepository) DetachCaregiver(ctx context.Context, serviceID, caregiverID string) error {
	query := `DELETE FROM service_caregiver WHERE service_id = ? AND caregiver_id = ?`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), serviceID, caregiverID)
	if err != nil {
		return mapError("detach caregiver", err)
	}
	return requireAffected("detach caregiver", res)
}

func (r *SQLAssignmentsRepository) ListCaregiversByService(ctx context.Context, serviceID string) ([]domain.AssignedCaregiver, error) {
	query := `
		SELECT ` + caregiverColumns + `, ` + assignmentColumns + `
		FROM service_caregiver
		JOIN caregivers ON caregivers.id = service_caregiver.caregiver_id
		WHERE service_caregiver.service_id = ?
		ORDER BY caregivers.name, caregivers.id
	`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list service caregivers: %w", err)
	}
	defer rows.Close()

	out := []domain.AssignedCaregiver{}
	for rows.Next() {
		var (
			row   caregiverRow
			pivot domain.Assignment
		)
		if err := rows.Scan(append(row.fields(), assignmentFields(&pivot)...)...); err != nil {
			return nil, fmt.Errorf("failed to scan service caregiver: %w", err)
		}
		c, err := row.caregiver()
		if err != nil {
			return nil, err
		}
		out = append(out, domain.AssignedCaregiver{Caregiver: c, Pivot: pivot})
	}
	return out, rows.Err()
}
