package repository

import (
	"context"
	"fmt"

	"homecare-admin/internal/common/database"
	"homecare-admin/internal/domain"
)

// SQLAgenciesRepository AgenciesRepository 实现（Postgres / SQLite）
type SQLAgenciesRepository struct {
	db database.Conn
}

func NewSQLAgenciesRepository(db database.Conn) *SQLAgenciesRepository {
	return &SQLAgenciesRepository{db: db}
}

// 确保实现了接口
var _ AgenciesRepository = (*SQLAgenciesRepository)(nil)

const agencyColumns = `agencies.id, agencies.name, agencies.contact_person, agencies.phone, agencies.email,
	agencies.address, agencies.city, agencies.state, agencies.zip_code, agencies.license_number,
	agencies.is_active, agencies.created_at, agencies.updated_at`

func agencyFields(a *domain.Agency) []any {
	return []any{
		&a.ID, &a.Name, &a.ContactPerson, &a.Phone, &a.Email,
		&a.Address, &a.City, &a.State, &a.ZipCode, &a.LicenseNumber,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	}
}

func (r *SQLAgenciesRepository) GetAgency(ctx context.Context, id string) (*domain.Agency, error) {
	query := `SELECT ` + agencyColumns + ` FROM agencies WHERE agencies.id = ?`
	var a domain.Agency
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(query), id).Scan(agencyFields(&a)...); err != nil {
		return nil, mapError("get agency", err)
	}
	return &a, nil
}

func (r *SQLAgenciesRepository) CreateAgency(ctx context.Context, a *domain.Agency) error {
	domain.EnsureID(&a.ID)
	now := nowUTC()
	a.CreatedAt, a.UpdatedAt = now, now

	query := `
		INSERT INTO agencies (
			id, name, contact_person, phone, email, address, city, state, zip_code,
			license_number, is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		a.ID, a.Name, nilIfEmpty(a.ContactPerson), nilIfEmpty(a.Phone), nilIfEmpty(a.Email),
		nilIfEmpty(a.Address), nilIfEmpty(a.City), nilIfEmpty(a.State), nilIfEmpty(a.ZipCode),
		nilIfEmpty(a.LicenseNumber), a.IsActive, a.CreatedAt, a.UpdatedAt,
	)
	return mapError("create agency", err)
}

func (r *SQLAgenciesRepository) UpdateAgency(ctx context.Context, a *domain.Agency) error {
	a.UpdatedAt = nowUTC()
	query := `
		UPDATE agencies SET
			name = ?, contact_person = ?, phone = ?, email = ?, address = ?, city = ?,
			state = ?, zip_code = ?, license_number = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		a.Name, nilIfEmpty(a.ContactPerson), nilIfEmpty(a.Phone), nilIfEmpty(a.Email),
		nilIfEmpty(a.Address), nilIfEmpty(a.City), nilIfEmpty(a.State), nilIfEmpty(a.ZipCode),
		nilIfEmpty(a.LicenseNumber), a.IsActive, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return mapError("update agency", err)
	}
	return requireAffected("update agency", res)
}

func (r *SQLAgenciesRepository) DeleteAgency(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM agencies WHERE id = ?`), id)
	if err != nil {
		return mapError("delete agency", err)
	}
	return requireAffected("delete agency", res)
}

func (r *SQLAgenciesRepository) ListAgencyOptions(ctx context.Context) ([]domain.AgencyOption, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM agencies ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list agency options: %w", err)
	}
	defer rows.Close()

	out := []domain.AgencyOption{}
	for rows.Next() {
		var o domain.AgencyOption
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, fmt.Errorf("failed to scan agency option: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
