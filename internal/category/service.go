package category

import (
	"context"
	"strings"

	"agrimart-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Category, error)
	Create(ctx context.Context, name string) (*Category, error)
	CreateSubcategory(ctx context.Context, categoryID uuid.UUID, name string) (*Subcategory, error)
	// Validate checks that category exists and, when subcategory is set, that it belongs to it.
	Validate(ctx context.Context, category string, subcategory *string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	c := &Category{ID: uuid.New(), Name: name, Subcategories: []*Subcategory{}}
	if err := s.repo.Create(ctx, c); err != nil {
		logger.FromCtx(ctx).Error("failed to create category",
			zap.String("name", name), zap.Error(err))
		return nil, err
	}

	return c, nil
}

func (s *service) CreateSubcategory(ctx context.Context, categoryID uuid.UUID, name string) (*Subcategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	sub := &Subcategory{ID: uuid.New(), CategoryID: categoryID, Name: name}
	if err := s.repo.CreateSubcategory(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *service) Validate(ctx context.Context, category string, subcategory *string) error {
	c, err := s.repo.GetByName(ctx, category)
	if err != nil {
		return err
	}

	if subcategory != nil && *subcategory != "" && !c.HasSubcategory(*subcategory) {
		return ErrSubcategoryNotFound
	}

	return nil
}
