package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogapi/internal/auth"
	"blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/validation"
)

// AuthService handles registration, login and profile lookups.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Profile(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.JWTService
	hasher *auth.PasswordHasher
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.JWTService, hasher *auth.PasswordHasher) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// Register validates input, creates the user with a hashed password and
// issues a token. The returned user never carries plaintext material.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	if err := validation.RequireFields(
		validation.Field{Name: "username", Value: username},
		validation.Field{Name: "email", Value: email},
		validation.Field{Name: "password", Value: password},
	); err != nil {
		return nil, "", errors.Validation(err.Error())
	}

	if !validation.IsValidEmail(email) {
		return nil, "", errors.Validation("Invalid email format")
	}

	if err := validation.ValidatePassword(password); err != nil {
		return nil, "", errors.Validation(err.Error())
	}

	existing, err := s.users.FindByEmailOrUsername(ctx, email, username)
	if err == nil && existing != nil {
		return nil, "", errors.ErrUserExists
	}
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user by email and password and issues a token. The
// same error covers an unknown email and a wrong password.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if err := validation.RequireFields(
		validation.Field{Name: "email", Value: email},
		validation.Field{Name: "password", Value: password},
	); err != nil {
		return nil, "", errors.Validation(err.Error())
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Profile reloads the authenticated user's record. The record can vanish
// between token issuance and this call, hence the not-found case.
func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
