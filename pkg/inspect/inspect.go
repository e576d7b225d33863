package inspect

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Storage keys and literals the inspector compares against.
const (
	TokenKey  = "token"
	UserKey   = "user"
	AdminRole = "admin"
	AdminPath = "/admin"
)

// ErrUnavailable is returned by New when the storage or path capability is
// missing, i.e. there is no client context to inspect.
var ErrUnavailable = errors.New("inspect: no client context available")

// Storage is a read-only view of client-side key/value storage. GetItem is a
// total function: a missing key reports ok=false, never an error.
type Storage interface {
	GetItem(key string) (string, bool)
}

// PathProvider reports the current navigation path of the client.
type PathProvider interface {
	Path() string
}

// PathFunc adapts a plain function to a PathProvider.
type PathFunc func() string

func (f PathFunc) Path() string { return f() }

// StaticPath is a PathProvider that always reports the same path.
type StaticPath string

func (p StaticPath) Path() string { return string(p) }

// MapStorage is a Storage backed by a plain map.
type MapStorage map[string]string

func (m MapStorage) GetItem(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// User is a deserialized user record. Fields are kept as decoded so the
// record round-trips unchanged.
type User map[string]any

// Role returns the record's role, or "" when the field is missing or not a string.
func (u User) Role() string {
	role, _ := u["role"].(string)
	return role
}

// IsAdmin reports whether the record carries exactly the admin role.
func (u User) IsAdmin() bool {
	return u != nil && u.Role() == AdminRole
}

// Result is the outcome of a session inspection.
type Result struct {
	HasToken       bool `json:"hasToken"`
	HasUser        bool `json:"hasUser"`
	User           User `json:"user"`
	IsOnAdminRoute bool `json:"isOnAdminRoute"`
	IsAdmin        bool `json:"isAdmin"`

	// Token is only set by an Inspector built WithTokenDetails.
	Token *TokenInfo `json:"token,omitempty"`

	// UserError describes why the stored user record failed to decode. It
	// tells a malformed record apart from a stored null once the result has
	// crossed the wire.
	UserError string `json:"userError,omitempty"`

	// UserErr holds the deserialization failure of the stored user record,
	// if any. It is informational; User is nil whenever it is set. It does
	// not survive JSON, use UserError there.
	UserErr error `json:"-"`
}

// UserMalformed reports whether a stored user record failed to decode.
func (r Result) UserMalformed() bool {
	return r.UserErr != nil || r.UserError != ""
}

// Inspect reads the token and user entries from s and the navigation path from
// p. It never fails: a malformed user record is reported through UserErr and
// read as an absent user.
func Inspect(s Storage, p PathProvider) Result {
	var res Result

	if token, ok := s.GetItem(TokenKey); ok && token != "" {
		res.HasToken = true
	}

	if raw, ok := s.GetItem(UserKey); ok && raw != "" {
		res.HasUser = true
		user, err := decodeUser(raw)
		if err != nil {
			res.UserErr = err
			res.UserError = err.Error()
		} else {
			res.User = user
		}
	}

	res.IsAdmin = res.User.IsAdmin()
	res.IsOnAdminRoute = p.Path() == AdminPath

	return res
}

// decodeUser parses a serialized user record. Anything other than a JSON
// object (or null) is a deserialization failure.
func decodeUser(raw string) (User, error) {
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("inspect: decode user record: %w", err)
	}
	return user, nil
}
