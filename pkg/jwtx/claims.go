package jwtx

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformed = errors.New("jwtx: malformed token")

// Claims are the claims a client-side session token is expected to carry.
// Only RegisteredClaims are standard, the rest are what the storefront's
// auth flow puts in its tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Role of the authenticated user, e.g. "admin" or "user"
	Role string `json:"role,omitempty"`

	// Username for the authenticated user
	Username string `json:"username,omitempty"`

	// Permission Scopes "orders:read, admin:read"
	Scopes []string `json:"scopes,omitempty"`
}

// Peek decodes the claims of a JWT without verifying its signature. The
// result is for display only and must never be used for an authorization
// decision.
func Peek(token string) (Claims, error) {
	var claims Claims

	// Cheap shape check first so opaque tokens don't go through the parser.
	if strings.Count(token, ".") != 2 {
		return Claims{}, ErrMalformed
	}

	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, errors.Join(ErrMalformed, err)
	}

	return claims, nil
}

// Expired reports whether the token's exp lies before now. Tokens without an
// exp never expire.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(c.ExpiresAt.Time)
}
