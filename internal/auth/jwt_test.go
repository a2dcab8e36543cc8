package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueAndParse(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	raw, err := tokens.Issue(7, "seller@farm.in", "SELLER")
	require.NoError(t, err)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "seller@farm.in", claims.Email)
	assert.Equal(t, "SELLER", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokens_Parse(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	t.Run("WrongSecret", func(t *testing.T) {
		raw, err := NewTokens("other", time.Hour).Issue(7, "a@b.c", "USER")
		require.NoError(t, err)

		_, err = tokens.Parse(raw)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		issuer := NewTokens("test-secret", time.Hour)
		issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		raw, err := issuer.Issue(7, "a@b.c", "USER")
		require.NoError(t, err)

		_, err = tokens.Parse(raw)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("NoneAlgorithm", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 7}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tokens.Parse(raw)
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tokens.Parse("not.a.token")
		assert.Error(t, err)
	})
}

func TestTokens_MissingSecret(t *testing.T) {
	tokens := NewTokens("", 0)
	assert.Equal(t, DefaultTTL, tokens.TTL())

	_, err := tokens.Issue(1, "a@b.c", "USER")
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = tokens.Parse("x")
	assert.ErrorIs(t, err, ErrMissingSecret)
}
