package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/sessionprobe/internal/store"
	_ "modernc.org/sqlite"
)

// Store persists client storage in a SQLite database file.
type Store struct {
	db  *sql.DB
	dsn string
	now func() time.Time
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:  db,
		dsn: dsn,
		now: time.Now,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) GetItem(ctx context.Context, profile, key string) (store.Item, error) {
	if err := store.Validate(profile, key); err != nil {
		return store.Item{}, err
	}

	var (
		value     string
		updatedMs int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, updated_at_ms FROM client_storage WHERE profile = ? AND key = ?`,
		profile, key,
	).Scan(&value, &updatedMs)
	if err != nil {
		return store.Item{}, mapNotFound(err)
	}

	return store.Item{
		Profile:   profile,
		Key:       key,
		Value:     value,
		UpdatedAt: time.UnixMilli(updatedMs).UTC(),
	}, nil
}

func (s *Store) SetItem(ctx context.Context, profile, key, value string) error {
	if err := store.Validate(profile, key); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO client_storage (profile, key, value, updated_at_ms)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (profile, key) DO UPDATE SET
			value = excluded.value,
			updated_at_ms = excluded.updated_at_ms`,
		profile, key, value, s.now().UnixMilli(),
	)
	return err
}

func (s *Store) RemoveItem(ctx context.Context, profile, key string) error {
	if err := store.Validate(profile, key); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM client_storage WHERE profile = ? AND key = ?`,
		profile, key,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListItems(ctx context.Context, profile string) ([]store.Item, error) {
	if err := store.ValidateProfile(profile); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value, updated_at_ms FROM client_storage WHERE profile = ? ORDER BY key`,
		profile,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []store.Item{}
	for rows.Next() {
		var (
			item      = store.Item{Profile: profile}
			updatedMs int64
		)
		if err := rows.Scan(&item.Key, &item.Value, &updatedMs); err != nil {
			return nil, err
		}
		item.UpdatedAt = time.UnixMilli(updatedMs).UTC()
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) ClearProfile(ctx context.Context, profile string) (int, error) {
	if err := store.ValidateProfile(profile); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM client_storage WHERE profile = ?`, profile)
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	return int(n), err
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
