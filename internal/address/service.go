package address

import (
	"context"
	"strings"

	"agrimart-be/internal/logger"
	"agrimart-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Address, error)
	Get(ctx context.Context, addressID uuid.UUID) (*Address, error)
	Create(ctx context.Context, input CreateAddressInput) (*Address, error)
	Delete(ctx context.Context, addressID uuid.UUID) error
	// Owned returns an active address belonging to userID.
	Owned(ctx context.Context, userID uint, addressID uuid.UUID) (*Address, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(
	ctx context.Context,
) ([]*Address, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) Get(
	ctx context.Context,
	addressID uuid.UUID,
) (*Address, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	return s.Owned(ctx, userID, addressID)
}

func (s *service) Owned(
	ctx context.Context,
	userID uint,
	addressID uuid.UUID,
) (*Address, error) {

	addr, err := s.repo.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}

	if addr.UserID != userID || !addr.IsActive {
		logger.FromCtx(ctx).Warn("address not owned by user",
			zap.String("address_id", addressID.String()),
			zap.Uint("user_id", userID),
		)
		return nil, ErrAddressNotFound
	}

	return addr, nil
}

func (s *service) Create(
	ctx context.Context,
	input CreateAddressInput,
) (*Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateAddress"),
	)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	addr := &Address{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(input.Email),
		Phone:    strings.TrimSpace(input.Phone),
		Street:   strings.TrimSpace(input.Street),
		City:     strings.TrimSpace(input.City),
		State:    strings.TrimSpace(input.State),
		Zipcode:  strings.TrimSpace(input.Zipcode),
		Country:  strings.TrimSpace(input.Country),
		IsActive: true,
	}

	if utils.BlankAny(addr.Name, addr.Phone, addr.Street, addr.City, addr.State, addr.Zipcode, addr.Country) {
		return nil, ErrMissingFields
	}
	if addr.Email != "" && !strings.Contains(addr.Email, "@") {
		return nil, ErrInvalidEmail
	}

	if err := s.repo.Create(ctx, addr); err != nil {
		log.Error("failed to create address", zap.Error(err))
		return nil, err
	}

	log.Info("address created", zap.String("address_id", addr.ID.String()))
	return addr, nil
}

func (s *service) Delete(
	ctx context.Context,
	addressID uuid.UUID,
) error {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	if _, err := s.Owned(ctx, userID, addressID); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("address deactivated",
		zap.String("address_id", addressID.String()),
		zap.Uint("user_id", userID),
	)

	return s.repo.Deactivate(ctx, addressID)
}
