package user

import (
	"context"
	"errors"
	"strings"

	"medicore-be/internal/auth"
	"medicore-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, userID uint) (*User, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	List(ctx context.Context) ([]*User, error)
	SetRole(ctx context.Context, id uint, role Role) (*User, error)
}

type service struct {
	repo   Repository
	tokens *auth.TokenManager
}

func NewService(repo Repository, tokens *auth.TokenManager) Service {
	return &service{repo: repo, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("email", email),
	)

	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = RolePatient
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, CreateUserParams{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Phone:        input.Phone,
		PasswordHash: hashed,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	log.Info("register service completed", zap.Uint("user_id", u.ID))
	return &AuthResult{Token: token, User: *u}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		log.Info("login with unknown email")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Info("password mismatch", zap.Uint("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: *u}, nil
}

func (s *service) Me(ctx context.Context, userID uint) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*User, error) {
	if params.Password != nil {
		if err := validatePassword(*params.Password); err != nil {
			return nil, err
		}
		hashed, err := HashPassword(*params.Password)
		if err != nil {
			return nil, err
		}
		params.Password = &hashed
	}
	return s.repo.UpdateProfile(ctx, params)
}

// ForgotPassword returns a reset token for a known address. There is no mail
// delivery, so the caller hands the token back to ResetPassword directly.
func (s *service) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}

	token, err := s.tokens.IssueReset(u.ID, u.Email)
	if err != nil {
		return "", err
	}

	logger.FromCtx(ctx).Info("password reset token issued", zap.Uint("user_id", u.ID))
	return token, nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.ParseReset(token)
	if err != nil {
		logger.FromCtx(ctx).Info("reset token rejected", zap.Error(err))
		return ErrInvalidResetToken
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, claims.UserID, hashed)
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) SetRole(ctx context.Context, id uint, role Role) (*User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	return s.repo.UpdateRole(ctx, id, role)
}
