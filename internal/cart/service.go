package cart

import (
	"context"
	"fmt"

	"agrimart-be/internal/logger"
	"agrimart-be/internal/product"
	"agrimart-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductReader is the slice of the catalog the cart needs to validate entries.
type ProductReader interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*product.Product, error)
}

type Service interface {
	Get(ctx context.Context) (*Cart, error)
	Replace(ctx context.Context, items []Item) (*Cart, error)
	SetItem(ctx context.Context, productID uuid.UUID, quantity int) (*Cart, error)
	Clear(ctx context.Context) error
}

type service struct {
	repo     Repository
	products ProductReader
}

func NewService(repo Repository, products ProductReader) Service {
	return &service{repo: repo, products: products}
}

func (s *service) Get(ctx context.Context) (*Cart, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	lines, err := s.repo.GetLines(ctx, userID)
	if err != nil {
		return nil, err
	}

	return newCart(lines), nil
}

// Replace overwrites the cart with items. Zero quantities are dropped and
// repeated product ids are merged, so sending the same body twice is harmless.
func (s *service) Replace(ctx context.Context, items []Item) (*Cart, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ReplaceCart"),
		zap.Uint("user_id", userID),
	)

	merged := make([]Item, 0, len(items))
	index := make(map[uuid.UUID]int, len(items))
	for _, it := range items {
		if it.Quantity < 0 {
			return nil, ErrInvalidQuantity
		}
		if it.Quantity == 0 {
			continue
		}
		if i, seen := index[it.ProductID]; seen {
			merged[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(merged)
		merged = append(merged, it)
	}

	if err := s.checkStock(ctx, merged); err != nil {
		return nil, err
	}

	if err := s.repo.Replace(ctx, userID, merged); err != nil {
		log.Error("failed to replace cart", zap.Error(err))
		return nil, err
	}

	log.Info("cart replaced", zap.Int("items", len(merged)))
	return s.Get(ctx)
}

func (s *service) SetItem(ctx context.Context, productID uuid.UUID, quantity int) (*Cart, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	switch {
	case quantity < 0:
		return nil, ErrInvalidQuantity
	case quantity == 0:
		if err := s.repo.Remove(ctx, userID, productID); err != nil {
			return nil, err
		}
	default:
		if err := s.checkStock(ctx, []Item{{ProductID: productID, Quantity: quantity}}); err != nil {
			return nil, err
		}
		if err := s.repo.Upsert(ctx, userID, productID, quantity); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx)
}

func (s *service) Clear(ctx context.Context) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotAuthenticated
	}
	return s.repo.Clear(ctx, userID)
}

func (s *service) checkStock(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrProductNotFound, it.ProductID)
		}
		if it.Quantity > p.Stock {
			return fmt.Errorf("%w: %s has %d left", ErrExceedsStock, p.Name, p.Stock)
		}
	}

	return nil
}
