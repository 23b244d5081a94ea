package repository

import (
	"context"
	"fmt"

	"homecare-admin/internal/common/database"
	"homecare-admin/internal/domain"
)

type SQLParticipantsRepository struct {
	db database.Conn
}

func NewSQLParticipantsRepository(db database.Conn) *SQLParticipantsRepository {
	return &SQLParticipantsRepository{db: db}
}

var _ ParticipantsRepository = (*SQLParticipantsRepository)(nil)

const participantColumns = `participants.id, participants.name, participants.medicaid_id, participants.gender,
	participants.dob, participants.address, participants.primary_phone, participants.secondary_phone,
	participants.community, participants.is_active, participants.case_manager_id,
	participants.created_at, participants.updated_at`

func participantFields(p *domain.Participant) []any {
	return []any{
		&p.ID, &p.Name, &p.MedicaidID, &p.Gender,
		&p.DOB, &p.Address, &p.PrimaryPhone, &p.SecondaryPhone,
		&p.Community, &p.IsActive, &p.CaseManagerID,
		&p.CreatedAt, &p.UpdatedAt,
	}
}

func (r *SQLParticipantsRepository) GetParticipant(ctx context.Context, id string) (*domain.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE participants.id = ?`
	var p domain.Participant
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(query), id).Scan(participantFields(&p)...); err != nil {
		return nil, mapError("get participant", err)
	}
	return &p, nil
}

func (r *SQLParticipantsRepository) CreateParticipant(ctx context.Context, p *domain.Participant) error {
	domain.EnsureID(&p.ID)
	now := nowUTC()
	p.CreatedAt, p.UpdatedAt = now, now

	query := `
		INSERT INTO participants (
			id, name, medicaid_id, gender, dob, address, primary_phone, secondary_phone,
			community, is_active, case_manager_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		p.ID, p.Name, p.MedicaidID, string(p.Gender), p.DOB, p.Address, p.PrimaryPhone,
		nilIfEmpty(p.SecondaryPhone), nilIfEmpty(p.Community), p.IsActive, nilIfEmpty(p.CaseManagerID),
		p.CreatedAt, p.UpdatedAt,
	)
	return mapError("create participant", err)
}

func (r *SQLParticipantsRepository) UpdateParticipant(ctx context.Context, p *domain.Participant) error {
	p.UpdatedAt = nowUTC()
	query := `
		UPDATE participants SET
			name = ?, medicaid_id = ?, gender = ?, dob = ?, address = ?, primary_phone = ?,
			secondary_phone = ?, community = ?, is_active = ?, case_manager_id = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		p.Name, p.MedicaidID, string(p.Gender), p.DOB, p.Address, p.PrimaryPhone,
		nilIfEmpty(p.SecondaryPhone), nilIfEmpty(p.Community), p.IsActive, nilIfEmpty(p.CaseManagerID),
		p.UpdatedAt, p.ID,
	)
	if err != nil {
		return mapError("update participant", err)
	}
	return requireAffected("update participant", res)
}

func (r *SQLParticipantsRepository) DeleteParticipant(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM participants WHERE id = ?`), id)
	if err != nil {
		return mapError("delete participant", err)
	}
	return requireAffected("delete participant", res)
}

func (r *SQLParticipantsRepository) ListParticipantsByCaseManager(ctx context.Context, caseManagerID string) ([]domain.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE participants.case_manager_id = ? ORDER BY participants.name, participants.id`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), caseManagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	out := []domain.Participant{}
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(participantFields(&p)...); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLParticipantsRepository) ListActiveParticipantOptions(ctx context.Context) ([]domain.ParticipantOption, error) {
	query := `SELECT id, name, medicaid_id FROM participants WHERE is_active = ? ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), true)
	if err != nil {
		return nil, fmt.Errorf("failed to list participant options: %w", err)
	}
	defer rows.Close()

	out := []domain.ParticipantOption{}
	for rows.Next() {
		var o domain.ParticipantOption
		if err := rows.Scan(&o.ID, &o.Name, &o.MedicaidID); err != nil {
			return nil, fmt.Errorf("failed to scan participant option: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
