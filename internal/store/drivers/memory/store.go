package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/aussiebroadwan/sessionprobe/internal/store"
)

// Store keeps client storage in process memory. Contents are lost on exit.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]map[string]store.Item
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		profiles: make(map[string]map[string]store.Item),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) GetItem(ctx context.Context, profile, key string) (store.Item, error) {
	if err := store.Validate(profile, key); err != nil {
		return store.Item{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.profiles[profile][key]
	if !ok {
		return store.Item{}, store.ErrNotFound
	}
	return item, nil
}

func (s *Store) SetItem(ctx context.Context, profile, key, value string) error {
	if err := store.Validate(profile, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.profiles[profile]
	if !ok {
		items = make(map[string]store.Item)
		s.profiles[profile] = items
	}
	items[key] = store.Item{Profile: profile, Key: key, Value: value, UpdatedAt: s.now()}
	return nil
}

func (s *Store) RemoveItem(ctx context.Context, profile, key string) error {
	if err := store.Validate(profile, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.profiles[profile]
	if _, ok := items[key]; !ok {
		return store.ErrNotFound
	}
	delete(items, key)
	if len(items) == 0 {
		delete(s.profiles, profile)
	}
	return nil
}

func (s *Store) ListItems(ctx context.Context, profile string) ([]store.Item, error) {
	if err := store.ValidateProfile(profile); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.profiles[profile]
	out := make([]store.Item, 0, len(items))
	for _, key := range slices.Sorted(maps.Keys(items)) {
		out = append(out, items[key])
	}
	return out, nil
}

func (s *Store) ClearProfile(ctx context.Context, profile string) (int, error) {
	if err := store.ValidateProfile(profile); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.profiles[profile])
	delete(s.profiles, profile)
	return n, nil
}

func (s *Store) ApplyMigrations() error         { return nil } // nothing to migrate
func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close() error                   { return nil }
