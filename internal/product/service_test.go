package product

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"agrimart-be/internal/category"
	"agrimart-be/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*Product), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	return m.Called(ctx, id, stock).Error(0)
}

type MockCategories struct {
	mock.Mock
}

func (m *MockCategories) List(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategories) Create(ctx context.Context, name string) (*category.Category, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategories) CreateSubcategory(ctx context.Context, id uuid.UUID, name string) (*category.Subcategory, error) {
	args := m.Called(ctx, id, name)
	return args.Get(0).(*category.Subcategory), args.Error(1)
}

func (m *MockCategories) Validate(ctx context.Context, name string, sub *string) error {
	return m.Called(ctx, name, sub).Error(0)
}

// memoryStore is a map-backed cache used to observe cache-aside behaviour.
type memoryStore struct {
	data    map[string][]byte
	deleted []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (s *memoryStore) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (s *memoryStore) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	return nil
}

func (s *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.data, k)
		s.deleted = append(s.deleted, k)
	}
	return nil
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	p := &Product{ID: id, Name: "Urea", Category: "Fertilizers", Price: 120, Stock: 5}

	t.Run("CacheAside", func(t *testing.T) {
		repo := new(MockRepository)
		store := newMemoryStore()
		svc := NewService(repo, new(MockCategories), store, time.Minute)

		repo.On("GetByID", ctx, id).Return(p, nil).Once()

		first, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		second, err := svc.GetByID(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, first.Name, second.Name)
		assert.Contains(t, store.data, "product:"+id.String())
		repo.AssertNumberOfCalls(t, "GetByID", 1)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCategories), nil, time.Minute)

		repo.On("GetByID", ctx, id).Return(nil, ErrProductNotFound)

		_, err := svc.GetByID(ctx, id)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_Create(t *testing.T) {
	sellerCtx := utils.SetUserContext(context.Background(), 9, "seller@farm.in", utils.RoleSeller)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		cats := new(MockCategories)
		svc := NewService(repo, cats, nil, time.Minute)

		cats.On("Validate", sellerCtx, "Seeds", (*string)(nil)).Return(nil)
		repo.On("Create", sellerCtx, mock.MatchedBy(func(p *Product) bool {
			return p.SellerID == 9 && p.Name == "Paddy" && p.Description != nil
		})).Return(nil)

		p, err := svc.Create(sellerCtx, CreateProductInput{Name: " Paddy ", Category: "Seeds", Price: 400, Stock: 10})
		require.NoError(t, err)
		assert.Equal(t, "Paddy", p.Name)
		assert.Equal(t, []string{}, p.Images)
		repo.AssertExpectations(t)
	})

	t.Run("OfferAbovePrice", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCategories), nil, time.Minute)
		offer := int64(500)

		_, err := svc.Create(sellerCtx, CreateProductInput{Name: "Paddy", Category: "Seeds", Price: 400, OfferPrice: &offer})
		assert.ErrorIs(t, err, ErrInvalidOfferPrice)
	})

	t.Run("NegativeStock", func(t *testing.T) {
		cats := new(MockCategories)
		cats.On("Validate", sellerCtx, "Seeds", (*string)(nil)).Return(nil)
		svc := NewService(new(MockRepository), cats, nil, time.Minute)

		_, err := svc.Create(sellerCtx, CreateProductInput{Name: "Paddy", Category: "Seeds", Price: 400, Stock: -1})
		assert.ErrorIs(t, err, ErrInvalidStock)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		cats := new(MockCategories)
		cats.On("Validate", sellerCtx, "Toys", (*string)(nil)).Return(category.ErrCategoryNotFound)
		svc := NewService(new(MockRepository), cats, nil, time.Minute)

		_, err := svc.Create(sellerCtx, CreateProductInput{Name: "Ball", Category: "Toys", Price: 10})
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCategories), nil, time.Minute)

		_, err := svc.Create(context.Background(), CreateProductInput{Name: "Paddy", Category: "Seeds", Price: 400})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("InvalidatesCache", func(t *testing.T) {
		repo := new(MockRepository)
		cats := new(MockCategories)
		store := newMemoryStore()
		store.data["product:"+id.String()] = []byte(`{}`)
		svc := NewService(repo, cats, store, time.Minute)

		existing := &Product{ID: id, Name: "Urea", Category: "Fertilizers", Price: 120}
		price := int64(150)

		repo.On("GetByID", ctx, id).Return(existing, nil)
		cats.On("Validate", ctx, "Fertilizers", (*string)(nil)).Return(nil)
		repo.On("Update", ctx, existing).Return(nil)

		p, err := svc.Update(ctx, UpdateProductInput{ID: id, Price: &price})
		require.NoError(t, err)
		assert.Equal(t, int64(150), p.Price)
		assert.NotContains(t, store.data, "product:"+id.String())
	})

	t.Run("NoChanges", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCategories), nil, time.Minute)

		_, err := svc.Update(ctx, UpdateProductInput{ID: id})
		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	})
}

func TestService_SetStock(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		store := newMemoryStore()
		svc := NewService(repo, new(MockCategories), store, time.Minute)

		repo.On("SetStock", ctx, id, 8).Return(nil)
		repo.On("GetByID", ctx, id).Return(&Product{ID: id, Stock: 8}, nil)

		p, err := svc.SetStock(ctx, id, 8)
		require.NoError(t, err)
		assert.Equal(t, 8, p.Stock)
		assert.Equal(t, []string{"product:" + id.String()}, store.deleted)
	})

	t.Run("Negative", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCategories), nil, time.Minute)

		_, err := svc.SetStock(ctx, id, -2)
		assert.ErrorIs(t, err, ErrInvalidStock)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCategories), nil, time.Minute)
		repo.On("SetStock", ctx, id, 1).Return(errors.New("db down"))

		_, err := svc.SetStock(ctx, id, 1)
		assert.Error(t, err)
	})
}
