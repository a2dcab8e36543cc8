package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"agrimart-be/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 21
	}
	return args.Error(0)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func newTestService(repo Repository) (Service, *auth.Tokens) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	return NewService(repo, tokens, []string{"Seller@Farm.in"}), tokens
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc, tokens := newTestService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
			return u.Email == "ravi@farm.in" && u.Role == RoleUser && CheckPasswordHash("password123", u.Password)
		})).Return(nil)

		token, u, err := svc.Register(ctx, RegisterInput{Name: "Ravi", Email: " Ravi@Farm.in ", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, uint(21), u.ID)

		claims, err := tokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, uint(21), claims.UserID)
		assert.Equal(t, "USER", claims.Role)
	})

	t.Run("SellerEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo)
		repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool { return u.Role == RoleSeller })).Return(nil)

		_, u, err := svc.Register(ctx, RegisterInput{Name: "Shop", Email: "seller@farm.in", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, RoleSeller, u.Role)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo)
		repo.On("Create", ctx, mock.Anything).Return(ErrEmailExists)

		_, _, err := svc.Register(ctx, RegisterInput{Name: "Ravi", Email: "ravi@farm.in", Password: "password123"})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("Validation", func(t *testing.T) {
		svc, _ := newTestService(new(MockRepository))

		_, _, err := svc.Register(ctx, RegisterInput{Name: "", Email: "ravi@farm.in", Password: "password123"})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, _, err = svc.Register(ctx, RegisterInput{Name: "Ravi", Email: "ravi", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidEmail)

		_, _, err = svc.Register(ctx, RegisterInput{Name: "Ravi", Email: "ravi@farm.in", Password: "short"})
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	stored := &User{ID: 5, Email: "ravi@farm.in", Password: hash, Role: RoleUser}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo)
		repo.On("FindByEmail", ctx, "ravi@farm.in").Return(stored, nil)

		token, u, err := svc.Login(ctx, LoginInput{Email: "RAVI@farm.in", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(5), u.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo)
		repo.On("FindByEmail", ctx, "ravi@farm.in").Return(stored, nil)

		_, _, err := svc.Login(ctx, LoginInput{Email: "ravi@farm.in", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo)
		repo.On("FindByEmail", ctx, "ghost@farm.in").Return(nil, ErrUserNotFound)

		_, _, err := svc.Login(ctx, LoginInput{Email: "ghost@farm.in", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("DBError", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo)
		repo.On("FindByEmail", ctx, "ravi@farm.in").Return(nil, errors.New("db down"))

		_, _, err := svc.Login(ctx, LoginInput{Email: "ravi@farm.in", Password: "password123"})
		assert.EqualError(t, err, "db down")
	})
}
