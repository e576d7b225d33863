package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/sessionprobe/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwtx.Claims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestPeek(t *testing.T) {
	exp := time.Unix(1700000000, 0).UTC()

	raw := signed(t, jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role:     "admin",
		Username: "alice",
		Scopes:   []string{"orders:read", "admin:read"},
	})

	claims, err := jwtx.Peek(raw)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.Subject)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, []string{"orders:read", "admin:read"}, claims.Scopes)
	require.True(t, claims.ExpiresAt.Time.Equal(exp))
}

func TestPeek_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"opaque", "abc"},
		{"empty", ""},
		{"three garbage segments", "a.b.c"},
		{"too many segments", "a.b.c.d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jwtx.Peek(tt.token)
			require.ErrorIs(t, err, jwtx.ErrMalformed)
		})
	}
}

func TestClaimsExpired(t *testing.T) {
	now := time.Now()

	t.Run("no exp never expires", func(t *testing.T) {
		require.False(t, jwtx.Claims{}.Expired(now))
	})

	t.Run("past exp", func(t *testing.T) {
		c := jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		}}
		require.True(t, c.Expired(now))
	})

	t.Run("future exp", func(t *testing.T) {
		c := jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}
		require.False(t, c.Expired(now))
	})
}
