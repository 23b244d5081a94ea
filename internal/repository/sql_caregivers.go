package repository

import (
	"context"
	"fmt"

	"homecare-admin/internal/common/database"
	"homecare-admin/internal/domain"
)

type SQLCaregiversRepository struct {
	db database.Conn
}

func NewSQLCaregiversRepository(db database.Conn) *SQLCaregiversRepository {
	return &SQLCaregiversRepository{db: db}
}

var _ CaregiversRepository = (*SQLCaregiversRepository)(nil)

const caregiverColumns = `caregivers.id, caregivers.name, caregivers.email, caregivers.phone, caregivers.is_active,
	caregivers.certifications, caregivers.available_hours, caregivers.created_at, caregivers.updated_at`

// caregiverRow defers certifications decoding until after Scan.
type caregiverRow struct {
	c     domain.Caregiver
	certs string
}

func (row *caregiverRow) fields() []any {
	c := &row.c
	return []any{&c.ID, &c.Name, &c.Email, &c.Phone, &c.IsActive, &row.certs, &c.AvailableHours, &c.CreatedAt, &c.UpdatedAt}
}

func (row *caregiverRow) caregiver() (domain.Caregiver, error) {
	certs, err := decodeStrings(row.certs)
	if err != nil {
		return domain.Caregiver{}, err
	}
	row.c.Certifications = certs
	return row.c, nil
}

func (r *SQLCaregiversRepository) GetCaregiver(ctx context.Context, id string) (*domain.Caregiver, error) {
	query := `SELECT ` + caregiverColumns + ` FROM caregivers WHERE caregivers.id = ?`
	var row caregiverRow
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(query), id).Scan(row.fields()...); err != nil {
		return nil, mapError("get caregiver", err)
	}
	c, err := row.caregiver()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SQLCaregiversRepository) CreateCaregiver(ctx context.Context, c *domain.Caregiver) error {
	domain.EnsureID(&c.ID)
	now := nowUTC()
	c.CreatedAt, c.UpdatedAt = now, now
	if c.Certifications == nil {
		c.Certifications = []string{}
	}
	certs, err := encodeStrings(c.Certifications)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO caregivers (id, name, email, phone, is_active, certifications, available_hours, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, r.db.Rebind(query),
		c.ID, c.Name, nilIfEmpty(c.Email), nilIfEmpty(c.Phone), c.IsActive, certs, c.AvailableHours,
		c.CreatedAt, c.UpdatedAt)
	return mapError("create caregiver", err)
}

func (r *SQLCaregiversRepository) UpdateCaregiver(ctx context.Context, c *domain.Caregiver) error {
	c.UpdatedAt = nowUTC()
	if c.Certifications == nil {
		c.Certifications = []string{}
	}
	certs, err := encodeStrings(c.Certifications)
	if err != nil {
		return err
	}
	query := `
		UPDATE caregivers SET
			name = ?, email = ?, phone = ?, is_active = ?, certifications = ?, available_hours = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		c.Name, nilIfEmpty(c.Email), nilIfEmpty(c.Phone), c.IsActive, certs, c.AvailableHours, c.UpdatedAt, c.ID)
	if err != nil {
		return mapError("update caregiver", err)
	}
	return requireAffected("update caregiver", res)
}

func (r *SQLCaregiversRepository) DeleteCaregiver(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM caregivers WHERE id = ?`), id)
	if err != nil {
		return mapError("delete caregiver", err)
	}
	return requireAffected("delete caregiver", res)
}

func (r *SQLCaregiversRepository) ListActiveCaregiverOptions(ctx context.Context) ([]domain.CaregiverOption, error) {
	query := `SELECT id, name, available_hours FROM caregivers WHERE is_active = ? ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), true)
	if err != nil {
		return nil, fmt.Errorf("failed to list caregiver options: %w", err)
	}
	defer rows.Close()

	out := []domain.CaregiverOption{}
	for rows.Next() {
		var o domain.CaregiverOption
		if err := rows.Scan(&o.ID, &o.Name, &o.AvailableHours); err != nil {
			return nil, fmt.Errorf("failed to scan caregiver option: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
