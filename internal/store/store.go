package store

import (
	"context"
	"errors"
	"regexp"
	"time"
)

var (
	ErrNotFound       = errors.New("store: not found")
	ErrInvalidProfile = errors.New("store: invalid profile name")
	ErrInvalidKey     = errors.New("store: invalid key")
)

// MaxKeyLength bounds item keys; browsers impose no hard limit but nothing
// legitimate in client storage needs more.
const MaxKeyLength = 256

var profilePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// Item is one persisted client-storage entry.
type Item struct {
	Profile   string
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Store is client-side key/value storage partitioned by profile, the way a
// browser partitions localStorage by origin. Concrete drivers (memory,
// sqlite) implement it.
type Store interface {
	// GetItem returns the value stored under key, or ErrNotFound.
	GetItem(ctx context.Context, profile, key string) (Item, error)

	// SetItem inserts or replaces the value stored under key.
	SetItem(ctx context.Context, profile, key, value string) error

	// RemoveItem deletes key. Removing a missing key returns ErrNotFound.
	RemoveItem(ctx context.Context, profile, key string) error

	// ListItems returns every item of profile ordered by key.
	ListItems(ctx context.Context, profile string) ([]Item, error)

	// ClearProfile removes every item of profile and reports how many went.
	ClearProfile(ctx context.Context, profile string) (int, error)

	ApplyMigrations() error

	// Ping verifies the backing storage is still reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// ValidateProfile checks a profile name is 1-64 chars of [A-Za-z0-9._-].
func ValidateProfile(profile string) error {
	if !profilePattern.MatchString(profile) {
		return ErrInvalidProfile
	}
	return nil
}

// ValidateKey checks a key is non-empty and at most MaxKeyLength bytes.
func ValidateKey(key string) error {
	if key == "" || len(key) > MaxKeyLength {
		return ErrInvalidKey
	}
	return nil
}

// Validate checks both a profile and a key.
func Validate(profile, key string) error {
	if err := ValidateProfile(profile); err != nil {
		return err
	}
	return ValidateKey(key)
}
