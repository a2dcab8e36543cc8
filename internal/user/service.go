package user

import (
	"context"
	"errors"
	"strings"

	"agrimart-be/internal/auth"
	"agrimart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (string, *User, error)
	Login(ctx context.Context, input LoginInput) (string, *User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
}

type service struct {
	repo    Repository
	tokens  *auth.Tokens
	sellers map[string]struct{}
}

// NewService registers any email in sellerEmails with the SELLER role.
func NewService(repo Repository, tokens *auth.Tokens, sellerEmails []string) Service {
	sellers := make(map[string]struct{}, len(sellerEmails))
	for _, e := range sellerEmails {
		sellers[normalizeEmail(e)] = struct{}{}
	}
	return &service{repo: repo, tokens: tokens, sellers: sellers}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, input RegisterInput) (string, *User, error) {
	email := normalizeEmail(input.Email)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("email", email),
	)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", nil, ErrNameRequired
	}
	if !strings.Contains(email, "@") {
		return "", nil, ErrInvalidEmail
	}
	if len(input.Password) < MinPasswordLength {
		return "", nil, ErrWeakPassword
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	role := RoleUser
	if _, ok := s.sellers[email]; ok {
		role = RoleSeller
	}

	u := &User{Email: email, Name: name, Password: hashed, Role: role}
	if err := s.repo.Create(ctx, u); err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.Error(err))
		}
		return "", nil, err
	}

	token, err := s.tokens.Issue(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("user registered", zap.Uint("user_id", u.ID), zap.String("role", string(u.Role)))
	return token, u, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (string, *User, error) {
	email := normalizeEmail(input.Email)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("email", email),
	)

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		log.Info("email not found")
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !CheckPasswordHash(input.Password, u.Password) {
		log.Info("password mismatch")
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email, string(u.Role))
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}
