package cart

import (
	"context"
	"database/sql"
	"fmt"

	"agrimart-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetLines(ctx context.Context, userID uint) ([]*Line, error)
	Replace(ctx context.Context, userID uint, items []Item) error
	Upsert(ctx context.Context, userID uint, productID uuid.UUID, quantity int) error
	Remove(ctx context.Context, userID uint, productID uuid.UUID) error
	Clear(ctx context.Context, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetLines(ctx context.Context, userID uint) ([]*Line, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCartLines"),
		zap.Uint("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.product_id,
			c.quantity,
			p.name,
			p.price,
			p.offer_price,
			p.stock,
			p.images
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at ASC
	`, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	lines := []*Line{}
	for rows.Next() {
		var (
			l      Line
			offer  sql.NullInt64
			images pq.StringArray
		)
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.Name, &l.Price, &offer, &l.Stock, &images); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		if offer.Valid {
			l.OfferPrice = &offer.Int64
		}
		l.Images = []string(images)
		lines = append(lines, &l)
	}

	return lines, rows.Err()
}

// Replace swaps the user's whole cart for items in one transaction.
func (r *repository) Replace(ctx context.Context, userID uint, items []Item) (err error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ReplaceCart"),
		zap.Uint("user_id", userID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedReplaceCart, err)
	}

	for _, it := range items {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO cart_items (user_id, product_id, quantity)
			VALUES ($1, $2, $3)
		`, userID, it.ProductID, it.Quantity); err != nil {
			log.Error("failed to insert cart item",
				zap.String("product_id", it.ProductID.String()), zap.Error(err))
			return fmt.Errorf("%w: %v", ErrFailedReplaceCart, err)
		}
	}

	return tx.Commit()
}

func (r *repository) Upsert(ctx context.Context, userID uint, productID uuid.UUID, quantity int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
	`, userID, productID, quantity)
	return err
}

func (r *repository) Remove(ctx context.Context, userID uint, productID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) Clear(ctx context.Context, userID uint) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		logger.FromCtx(ctx).Error("failed to clear cart", zap.Uint("user_id", userID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedClearCart, err)
	}
	return nil
}
