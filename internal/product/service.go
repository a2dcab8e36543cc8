package product

import (
	"context"
	"strings"
	"time"

	"agrimart-be/internal/cache"
	"agrimart-be/internal/category"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	Update(ctx context.Context, input UpdateProductInput) (*Product, error)
	SetStock(ctx context.Context, id uuid.UUID, stock int) (*Product, error)
	// Invalidate drops cached copies of the given products after an out-of-band stock change.
	Invalidate(ctx context.Context, ids ...uuid.UUID)
}

type service struct {
	repo       Repository
	categories category.Service
	cache      cache.Store
	ttl        time.Duration
}

func NewService(repo Repository, categories category.Service, store cache.Store, ttl time.Duration) Service {
	if store == nil {
		store = cache.Noop{}
	}
	return &service{repo: repo, categories: categories, cache: store, ttl: ttl}
}

func cacheKey(id uuid.UUID) string {
	return "product:" + id.String()
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProduct"),
		zap.String("product_id", id.String()),
	)

	var cached Product
	hit, err := s.cache.GetJSON(ctx, cacheKey(id), &cached)
	if err != nil {
		log.Warn("product cache read failed", zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, cacheKey(id), p, s.ttl); err != nil {
		log.Warn("product cache write failed", zap.Error(err))
	}

	return p, nil
}

func (s *service) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error) {
	return s.repo.GetByIDs(ctx, ids)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	sellerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	p := &Product{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Name:        strings.TrimSpace(input.Name),
		Description: nonNil(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Subcategory: input.Subcategory,
		Price:       input.Price,
		OfferPrice:  input.OfferPrice,
		Stock:       input.Stock,
		Images:      nonNil(input.Images),
	}

	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}
	if p.Stock < 0 {
		return nil, ErrInvalidStock
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID.String()))
	return p, nil
}

func (s *service) Update(ctx context.Context, input UpdateProductInput) (*Product, error) {
	if !input.HasChanges() {
		return nil, ErrNoFieldsToUpdate
	}

	p, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		p.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	if input.Category != nil {
		p.Category = strings.TrimSpace(*input.Category)
		p.Subcategory = nil
	}
	if input.Subcategory != nil {
		p.Subcategory = input.Subcategory
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.OfferPrice != nil {
		if *input.OfferPrice == 0 {
			p.OfferPrice = nil
		} else {
			p.OfferPrice = input.OfferPrice
		}
	}
	if input.Images != nil {
		p.Images = input.Images
	}

	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Invalidate(ctx, p.ID)
	return p, nil
}

func (s *service) SetStock(ctx context.Context, id uuid.UUID, stock int) (*Product, error) {
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	if err := s.repo.SetStock(ctx, id, stock); err != nil {
		return nil, err
	}
	s.Invalidate(ctx, id)

	return s.repo.GetByID(ctx, id)
}

func (s *service) Invalidate(ctx context.Context, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, cacheKey(id))
	}

	if err := s.cache.Del(ctx, keys...); err != nil {
		logger.FromCtx(ctx).Warn("product cache invalidation failed", zap.Error(err))
	}
}

func (s *service) validate(ctx context.Context, p *Product) error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	if p.OfferPrice != nil && (*p.OfferPrice <= 0 || *p.OfferPrice > p.Price) {
		return ErrInvalidOfferPrice
	}
	if p.Subcategory != nil && strings.TrimSpace(*p.Subcategory) == "" {
		p.Subcategory = nil
	}

	return s.categories.Validate(ctx, p.Category, p.Subcategory)
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
