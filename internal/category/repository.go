package category

import (
	"context"
	"database/sql"
	"errors"

	"agrimart-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type Repository interface {
	List(ctx context.Context) ([]*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	Create(ctx context.Context, c *Category) error
	CreateSubcategory(ctx context.Context, s *Subcategory) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListCategories"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, s.id, s.name
		FROM categories c
		LEFT JOIN subcategories s ON s.category_id = c.id
		ORDER BY c.name, s.name
	`)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var (
		out   []*Category
		index = map[uuid.UUID]*Category{}
	)

	for rows.Next() {
		var (
			c       Category
			subID   uuid.NullUUID
			subName sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &subID, &subName); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}

		existing, ok := index[c.ID]
		if !ok {
			existing = &Category{ID: c.ID, Name: c.Name, Subcategories: []*Subcategory{}}
			index[c.ID] = existing
			out = append(out, existing)
		}

		if subID.Valid {
			existing.Subcategories = append(existing.Subcategories, &Subcategory{
				ID:         subID.UUID,
				CategoryID: c.ID,
				Name:       subName.String,
			})
		}
	}

	return out, rows.Err()
}

func (r *repository) GetByName(ctx context.Context, name string) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM categories WHERE name = $1`, name,
	).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM subcategories WHERE category_id = $1 ORDER BY name`, c.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		s := &Subcategory{CategoryID: c.ID}
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		c.Subcategories = append(c.Subcategories, s)
	}

	return &c, rows.Err()
}

func (r *repository) Create(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name,
	)
	return mapUniqueViolation(err)
}

func (r *repository) CreateSubcategory(ctx context.Context, s *Subcategory) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subcategories (id, category_id, name) VALUES ($1, $2, $3)`,
		s.ID, s.CategoryID, s.Name,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return ErrCategoryNotFound
	}
	return mapUniqueViolation(err)
}

func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return ErrCategoryExists
	}
	return err
}
