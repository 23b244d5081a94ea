package repository

import (
	"context"
	"fmt"

	"homecare-admin/internal/common/database"
	"homecare-admin/internal/domain"
)

type SQLCaseManagersRepository struct {
	db database.Conn
}

func NewSQLCaseManagersRepository(db database.Conn) *SQLCaseManagersRepository {
	return &SQLCaseManagersRepository{db: db}
}

var _ CaseManagersRepository = (*SQLCaseManagersRepository)(nil)

const caseManagerColumns = `case_managers.id, case_managers.name, case_managers.email, case_managers.phone,
	case_managers.agency_id, case_managers.created_at, case_managers.updated_at`

func caseManagerFields(cm *domain.CaseManager) []any {
	return []any{&cm.ID, &cm.Name, &cm.Email, &cm.Phone, &cm.AgencyID, &cm.CreatedAt, &cm.UpdatedAt}
}

func (r *SQLCaseManagersRepository) GetCaseManager(ctx context.Context, id string) (*domain.CaseManager, error) {
	query := `SELECT ` + caseManagerColumns + ` FROM case_managers WHERE case_managers.id = ?`
	var cm domain.CaseManager
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(query), id).Scan(caseManagerFields(&cm)...); err != nil {
		return nil, mapError("get case manager", err)
	}
	return &cm, nil
}

func (r *SQLCaseManagersRepository) CreateCaseManager(ctx context.Context, cm *domain.CaseManager) error {
	domain.EnsureID(&cm.ID)
	now := nowUTC()
	cm.CreatedAt, cm.UpdatedAt = now, now

	query := `
		INSERT INTO case_managers (id, name, email, phone, agency_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		cm.ID, cm.Name, cm.Email, nilIfEmpty(cm.Phone), cm.AgencyID, cm.CreatedAt, cm.UpdatedAt)
	return mapError("create case manager", err)
}

func (r *SQLCaseManagersRepository) UpdateCaseManager(ctx context.Context, cm *domain.CaseManager) error {
	cm.UpdatedAt = nowUTC()
	query := `UPDATE case_managers SET name = ?, email = ?, phone = ?, agency_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		cm.Name, cm.Email, nilIfEmpty(cm.Phone), cm.AgencyID, cm.UpdatedAt, cm.ID)
	if err != nil {
		return mapError("update case manager", err)
	}
	return requireAffected("update case manager", res)
}

func (r *SQLCaseManagersRepository) DeleteCaseManager(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM case_managers WHERE id = ?`), id)
	if err != nil {
		return mapError("delete case manager", err)
	}
	return requireAffected("delete case manager", res)
}

func (r *SQLCaseManagersRepository) ListCaseManagersByAgency(ctx context.Context, agencyID string) ([]domain.CaseManager, error) {
	query := `SELECT ` + caseManagerColumns + ` FROM case_managers WHERE case_managers.agency_id = ? ORDER BY case_managers.name, case_managers.id`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), agencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list case managers: %w", err)
	}
	defer rows.Close()

	out := []domain.CaseManager{}
	for rows.Next() {
		var cm domain.CaseManager
		if err := rows.Scan(caseManagerFields(&cm)...); err != nil {
			return nil, fmt.Errorf("failed to scan case manager: %w", err)
		}
		out = append(out, cm)
	}
	return out, rows.Err()
}

func (r *SQLCaseManagersRepository) ListCaseManagerOptions(ctx context.Context) ([]domain.CaseManagerOption, error) {
	query := `
		SELECT case_managers.id, case_managers.name, agencies.name
		FROM case_managers
		LEFT JOIN agencies ON agencies.id = case_managers.agency_id
		ORDER BY case_managers.name, case_managers.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list case manager options: %w", err)
	}
	defer rows.Close()

	out := []domain.CaseManagerOption{}
	for rows.Next() {
		var (
			id, name   string
			agencyName *string
		)
		if err := rows.Scan(&id, &name, &agencyName); err != nil {
			return nil, fmt.Errorf("failed to scan case manager option: %w", err)
		}
		out = append(out, domain.NewCaseManagerOption(id, name, agencyName))
	}
	return out, rows.Err()
}
