package service

import (
	"context"

	"homecare-admin/internal/domain"
	"homecare-admin/internal/validation"

	"go.uber.org/zap"
)

// UserService 管理后台用户（无密码）
type UserService struct {
	Deps
}

func NewUserService(d Deps) *UserService {
	return &UserService{Deps: d}
}

func applyUser(v validation.Values, u *domain.User) {
	u.Name = v.String("name")
	u.Email = v.String("email")
	u.EmailVerifiedAt = v.TimePtr("email_verified_at")
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.Store.Repos().Users.GetUser(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in Input) (*domain.User, error) {
	v, err := s.validate(ctx, validation.UserRules(""), in)
	if err != nil {
		return nil, err
	}
	u := &domain.User{}
	applyUser(v, u)
	if err := s.Store.Repos().Users.CreateUser(ctx, u); err != nil {
		return nil, duplicateAs(err, "email")
	}
	s.logger().Info("User created", zap.String("user_id", u.ID))
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id string, in Input) (*domain.User, error) {
	repos := s.Store.Repos()
	u, err := repos.Users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := s.validate(ctx, validation.UserRules(id), in)
	if err != nil {
		return nil, err
	}
	applyUser(v, u)
	if err := repos.Users.UpdateUser(ctx, u); err != nil {
		return nil, duplicateAs(err, "email")
	}
	s.logger().Info("User updated", zap.String("user_id", u.ID))
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Repos().Users.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger().Info("User deleted", zap.String("user_id", id))
	return nil
}
