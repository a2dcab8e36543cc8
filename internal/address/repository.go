package address

import (
	"context"
	"database/sql"
	"errors"

	"agrimart-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID uint) ([]*Address, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Address, error)

	Create(ctx context.Context, addr *Address) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const addressColumns = `
	id, user_id,
	name, COALESCE(email, ''), phone,
	street, city, state, zipcode, country,
	is_active, created_at
`

func scanAddress(scan func(dest ...any) error) (*Address, error) {
	var a Address
	err := scan(
		&a.ID, &a.UserID,
		&a.Name, &a.Email, &a.Phone,
		&a.Street, &a.City, &a.State, &a.Zipcode, &a.Country,
		&a.IsActive, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetByUserID(
	ctx context.Context,
	userID uint,
) ([]*Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetAddressesByUser"),
		zap.Uint("user_id", userID),
	)

	q := `SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1
		  AND is_active = true
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	res := []*Address{}
	for rows.Next() {
		a, err := scanAddress(rows.Scan)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, a)
	}

	return res, rows.Err()
}

// GetByID returns the address regardless of its active flag; orders keep pointing at deactivated rows.
func (r *repository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*Address, error) {

	q := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	a, err := scanAddress(r.db.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("get address failed",
			zap.String("address_id", id.String()), zap.Error(err))
		return nil, err
	}

	return a, nil
}

func (r *repository) Create(
	ctx context.Context,
	addr *Address,
) error {

	const q = `
		INSERT INTO addresses (
			id, user_id,
			name, email, phone,
			street, city, state, zipcode, country,
			is_active
		) VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(
		ctx, q,
		addr.ID, addr.UserID,
		addr.Name, addr.Email, addr.Phone,
		addr.Street, addr.City, addr.State, addr.Zipcode, addr.Country,
		addr.IsActive,
	).Scan(&addr.CreatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("insert address failed",
			zap.String("address_id", addr.ID.String()), zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) Deactivate(
	ctx context.Context,
	id uuid.UUID,
) error {

	res, err := r.db.ExecContext(ctx,
		`UPDATE addresses SET is_active = false WHERE id = $1 AND is_active = true`, id,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAddressNotFound
	}

	return nil
}
