package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/sessionprobe/internal/store"
	"github.com/aussiebroadwan/sessionprobe/pkg/inspect"
	"github.com/aussiebroadwan/sessionprobe/pkg/slogx"
)

// SessionService inspects and edits the client storage kept per profile.
// Diagnostics are logged through the logger carried by the context.
type SessionService struct {
	Store store.Store

	// FingerprintKey keys token fingerprints in inspection results.
	FingerprintKey []byte
}

// InspectProfile runs a session inspection over the stored items of profile
// as if the client were on path. Only an invalid profile name is an error;
// storage failures degrade to absent entries like any other unreadable value.
func (s *SessionService) InspectProfile(ctx context.Context, profile, path string) (inspect.Result, error) {
	if err := store.ValidateProfile(profile); err != nil {
		return inspect.Result{}, err
	}

	logger := slogx.FromContext(ctx).With("profile", profile)
	return s.inspect(store.Reader(ctx, s.Store, profile, logger), inspect.StaticPath(path), logger)
}

// InspectClient runs a session inspection over state supplied by the client
// itself, e.g. request cookies.
func (s *SessionService) InspectClient(
	ctx context.Context,
	storage inspect.Storage,
	path inspect.PathProvider,
) (inspect.Result, error) {
	return s.inspect(storage, path, slogx.FromContext(ctx))
}

func (s *SessionService) inspect(
	storage inspect.Storage,
	path inspect.PathProvider,
	logger *slog.Logger,
) (inspect.Result, error) {
	inspector, err := inspect.New(storage, path,
		inspect.WithLogger(logger),
		inspect.WithTokenDetails(s.FingerprintKey),
	)
	if err != nil {
		return inspect.Result{}, err
	}
	return inspector.InspectSession(), nil
}

func (s *SessionService) GetItem(ctx context.Context, profile, key string) (store.Item, error) {
	return s.Store.GetItem(ctx, profile, key)
}

func (s *SessionService) SetItem(ctx context.Context, profile, key, value string) error {
	if err := s.Store.SetItem(ctx, profile, key, value); err != nil {
		return err
	}
	slogx.FromContext(ctx).Debug("client storage item set", "profile", profile, "key", key, "bytes", len(value))
	return nil
}

func (s *SessionService) RemoveItem(ctx context.Context, profile, key string) error {
	if err := s.Store.RemoveItem(ctx, profile, key); err != nil {
		return err
	}
	slogx.FromContext(ctx).Debug("client storage item removed", "profile", profile, "key", key)
	return nil
}

func (s *SessionService) ListItems(ctx context.Context, profile string) ([]store.Item, error) {
	return s.Store.ListItems(ctx, profile)
}

func (s *SessionService) ClearProfile(ctx context.Context, profile string) (int, error) {
	n, err := s.Store.ClearProfile(ctx, profile)
	if err != nil {
		return 0, err
	}
	slogx.FromContext(ctx).Info("client storage profile cleared", "profile", profile, "removed", n)
	return n, nil
}

// IsClientError reports whether err stems from bad caller input rather than
// a storage failure.
func IsClientError(err error) bool {
	return errors.Is(err, store.ErrInvalidProfile) || errors.Is(err, store.ErrInvalidKey)
}
