package inspect

import (
	"log/slog"
	"time"

	"github.com/aussiebroadwan/sessionprobe/pkg/cryptox"
	"github.com/aussiebroadwan/sessionprobe/pkg/jwtx"
)

// TokenInfo describes the stored token without exposing it. Claim fields are
// read from the token unverified and only filled in for JWT-shaped tokens.
type TokenInfo struct {
	Fingerprint string     `json:"fingerprint"`
	JWT         bool       `json:"jwt"`
	Subject     string     `json:"subject,omitempty"`
	Role        string     `json:"role,omitempty"`
	Scopes      []string   `json:"scopes,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Expired     bool       `json:"expired,omitempty"`
}

// Inspector binds a storage and path capability together so a session can be
// inspected repeatedly. Build one with New.
type Inspector struct {
	storage Storage
	path    PathProvider

	logger         *slog.Logger
	tokenDetails   bool
	fingerprintKey []byte
	now            func() time.Time
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger narrates every inspection to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) { i.logger = logger }
}

// WithTokenDetails attaches a TokenInfo to every result that has a token.
// key keys the token fingerprint and may be nil.
func WithTokenDetails(key []byte) Option {
	return func(i *Inspector) {
		i.tokenDetails = true
		i.fingerprintKey = key
	}
}

// WithClock overrides the clock used to decide token expiry.
func WithClock(now func() time.Time) Option {
	return func(i *Inspector) { i.now = now }
}

// New returns an Inspector over s and p. It returns ErrUnavailable when either
// capability is nil; callers must check before inspecting.
func New(s Storage, p PathProvider, opts ...Option) (*Inspector, error) {
	if s == nil || p == nil {
		return nil, ErrUnavailable
	}

	i := &Inspector{
		storage: s,
		path:    p,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// InspectSession inspects the bound storage and path. The result is always
// well formed; diagnostic narration goes to the configured logger, if any.
func (i *Inspector) InspectSession() Result {
	res := Inspect(i.storage, i.path)

	if i.tokenDetails && res.HasToken {
		token, _ := i.storage.GetItem(TokenKey)
		res.Token = i.describeToken(token)
	}

	if i.logger != nil {
		Narrate(i.logger, res)
	}
	return res
}

func (i *Inspector) describeToken(token string) *TokenInfo {
	info := &TokenInfo{Fingerprint: cryptox.FingerprintToken(token, i.fingerprintKey)}

	claims, err := jwtx.Peek(token)
	if err != nil {
		return info
	}

	info.JWT = true
	info.Subject = claims.Subject
	info.Role = claims.Role
	info.Scopes = claims.Scopes
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.UTC()
		info.ExpiresAt = &exp
		info.Expired = claims.Expired(i.now())
	}
	return info
}

// Narrate writes one diagnostic line per inspected field to logger. A user
// record that failed to decode is reported at warn level.
func Narrate(logger *slog.Logger, res Result) {
	logger.Info("session token", "has_token", res.HasToken)
	if res.Token != nil {
		logger.Info("session token details",
			"fingerprint", res.Token.Fingerprint,
			"jwt", res.Token.JWT,
			"subject", res.Token.Subject,
			"expired", res.Token.Expired,
		)
	}

	logger.Info("session user", "has_user", res.HasUser)
	if res.UserMalformed() {
		logger.Warn("session user record is malformed, treating as absent", "err", res.UserError)
	} else if res.User != nil {
		logger.Info("session user record", "role", res.User.Role(), "is_admin", res.IsAdmin)
	}

	logger.Info("session route", "is_on_admin_route", res.IsOnAdminRoute)
}
