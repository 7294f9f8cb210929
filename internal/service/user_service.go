package service

import (
	"context"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// UserService exposes admin-facing user operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService builds a UserService with a user repository.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}
