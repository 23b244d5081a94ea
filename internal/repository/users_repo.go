package repository

import (
	"context"

	"homecare-admin/internal/domain"
)

// UsersRepository 后台用户数据访问
type UsersRepository interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) error
	UpdateUser(ctx context.Context, u *domain.User) error
	DeleteUser(ctx context.Context, id string) error
}
