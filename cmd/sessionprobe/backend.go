package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/aussiebroadwan/sessionprobe/internal/app"
	"github.com/aussiebroadwan/sessionprobe/internal/service"
	"github.com/aussiebroadwan/sessionprobe/internal/store"
	"github.com/aussiebroadwan/sessionprobe/pkg/inspect"
	"github.com/aussiebroadwan/sessionprobe/pkg/probesdk"
	"github.com/aussiebroadwan/sessionprobe/pkg/slogx"
)

// backend is where the CLI reads and writes client storage: a local sqlite
// file or a remote service.
type backend interface {
	Inspect(ctx context.Context, profile, path string) (inspect.Result, error)
	Set(ctx context.Context, profile, key, value string) error
	Remove(ctx context.Context, profile, key string) error
	List(ctx context.Context, profile string) ([]probesdk.ItemResponse, error)
	Clear(ctx context.Context, profile string) (int, error)
	Close() error
}

func (o *rootOptions) logger(out io.Writer) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "sessionprobe",
		Version: app.BuildVersion,
		Env:     o.cfg.Env,
		Level:   o.cfg.LogLevel,
		Format:  o.cfg.LogFormat,
		Output:  out,
	})
}

func (o *rootOptions) open(logger *slog.Logger) (backend, error) {
	if o.server != "" {
		logger.Debug("using remote service", "server", o.server)
		return &remoteBackend{client: probesdk.NewClient(o.server), logger: logger}, nil
	}

	// Local mode always works on a file; an in-memory store would not outlive the command.
	cfg := o.cfg
	cfg.StorageDriver = app.DriverSQLite

	st, err := app.OpenStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &localBackend{
		st:  st,
		svc: &service.SessionService{Store: st, FingerprintKey: []byte(cfg.FingerprintKey)},
	}, nil
}

type localBackend struct {
	st  store.Store
	svc *service.SessionService
}

func (b *localBackend) Inspect(ctx context.Context, profile, path string) (inspect.Result, error) {
	return b.svc.InspectProfile(ctx, profile, path)
}

func (b *localBackend) Set(ctx context.Context, profile, key, value string) error {
	return b.svc.SetItem(ctx, profile, key, value)
}

func (b *localBackend) Remove(ctx context.Context, profile, key string) error {
	return b.svc.RemoveItem(ctx, profile, key)
}

func (b *localBackend) List(ctx context.Context, profile string) ([]probesdk.ItemResponse, error) {
	items, err := b.svc.ListItems(ctx, profile)
	if err != nil {
		return nil, err
	}

	out := make([]probesdk.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, probesdk.ItemResponse{
			Profile:   it.Profile,
			Key:       it.Key,
			Value:     it.Value,
			UpdatedAt: it.UpdatedAt,
		})
	}
	return out, nil
}

func (b *localBackend) Clear(ctx context.Context, profile string) (int, error) {
	return b.svc.ClearProfile(ctx, profile)
}

func (b *localBackend) Close() error { return b.st.Close() }

type remoteBackend struct {
	client *probesdk.Client
	logger *slog.Logger
}

func (b *remoteBackend) Inspect(ctx context.Context, profile, path string) (inspect.Result, error) {
	res, err := b.client.InspectProfile(ctx, profile, path)
	if err != nil {
		return inspect.Result{}, err
	}

	// The service narrates into its own log; repeat it here for the operator.
	inspect.Narrate(b.logger.With("profile", profile, "server", b.client.BaseURL), *res)
	return *res, nil
}

func (b *remoteBackend) Set(ctx context.Context, profile, key, value string) error {
	return b.client.SetItem(ctx, profile, key, value)
}

func (b *remoteBackend) Remove(ctx context.Context, profile, key string) error {
	return b.client.RemoveItem(ctx, profile, key)
}

func (b *remoteBackend) List(ctx context.Context, profile string) ([]probesdk.ItemResponse, error) {
	list, err := b.client.ListItems(ctx, profile)
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (b *remoteBackend) Clear(ctx context.Context, profile string) (int, error) {
	res, err := b.client.ClearProfile(ctx, profile)
	if err != nil {
		return 0, err
	}
	return res.Removed, nil
}

func (b *remoteBackend) Close() error {
	b.client.HTTPClient.CloseIdleConnections()
	return nil
}
