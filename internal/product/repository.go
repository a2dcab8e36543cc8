package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"agrimart-be/internal/logger"
	"agrimart-be/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	SetStock(ctx context.Context, id uuid.UUID, stock int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, seller_id, name, description, category, subcategory,
	price, offer_price, stock, images, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p           Product
		description pq.StringArray
		images      pq.StringArray
		subcategory sql.NullString
		offerPrice  sql.NullInt64
	)

	err := row.Scan(
		&p.ID, &p.SellerID, &p.Name, &description, &p.Category, &subcategory,
		&p.Price, &offerPrice, &p.Stock, &images, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Description = []string(description)
	p.Images = []string(images)
	if subcategory.Valid {
		p.Subcategory = &subcategory.String
	}
	if offerPrice.Valid {
		p.OfferPrice = &offerPrice.Int64
	}

	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id,
	)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get product",
			zap.String("product_id", id.String()), zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error) {
	out := make(map[uuid.UUID]*Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1::uuid[])`, pq.Array(raw),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}

	return out, rows.Err()
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	limit, offset := utils.NormalizePage(filter.Page, filter.Limit)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
		zap.Int("limit", limit),
		zap.Int("offset", offset),
	)

	query := `SELECT ` + productColumns + ` FROM products`

	var (
		where []string
		args  []any
	)

	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Subcategory != "" {
		args = append(args, filter.Subcategory)
		where = append(where, fmt.Sprintf("subcategory = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.InStock {
		where = append(where, "stock > 0")
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	log.Debug("executing list products query", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO products (
			id, seller_id, name, description, category, subcategory,
			price, offer_price, stock, images
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at
	`,
		p.ID, p.SellerID, p.Name, pq.Array(p.Description), p.Category, p.Subcategory,
		p.Price, p.OfferPrice, p.Stock, pq.Array(p.Images),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, category = $3, subcategory = $4,
		    price = $5, offer_price = $6, images = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`,
		p.Name, pq.Array(p.Description), p.Category, p.Subcategory,
		p.Price, p.OfferPrice, pq.Array(p.Images), p.ID,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	return err
}

func (r *repository) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET stock = $1, updated_at = NOW() WHERE id = $2`, stock, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
