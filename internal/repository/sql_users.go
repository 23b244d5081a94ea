package repository

import (
	"context"
	"time"

	"homecare-admin/internal/common/database"
	"homecare-admin/internal/domain"
)

type SQLUsersRepository struct {
	db database.Conn
}

func NewSQLUsersRepository(db database.Conn) *SQLUsersRepository {
	return &SQLUsersRepository{db: db}
}

var _ UsersRepository = (*SQLUsersRepository)(nil)

func timeArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func (r *SQLUsersRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, name, email, email_verified_at, created_at, updated_at FROM users WHERE id = ?`
	var u domain.User
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), id).Scan(
		&u.ID, &u.Name, &u.Email, &u.EmailVerifiedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapError("get user", err)
	}
	return &u, nil
}

func (r *SQLUsersRepository) CreateUser(ctx context.Context, u *domain.User) error {
	domain.EnsureID(&u.ID)
	now := nowUTC()
	u.CreatedAt, u.UpdatedAt = now, now

	query := `INSERT INTO users (id, name, email, email_verified_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		u.ID, u.Name, u.Email, timeArg(u.EmailVerifiedAt), u.CreatedAt, u.UpdatedAt)
	return mapError("create user", err)
}

func (r *SQLUsersRepository) UpdateUser(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = nowUTC()
	query := `UPDATE users SET name = ?, email = ?, email_verified_at = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		u.Name, u.Email, timeArg(u.EmailVerifiedAt), u.UpdatedAt, u.ID)
	if err != nil {
		return mapError("update user", err)
	}
	return requireAffected("update user", res)
}

func (r *SQLUsersRepository) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return mapError("delete user", err)
	}
	return requireAffected("delete user", res)
}
