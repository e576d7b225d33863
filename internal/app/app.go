package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/sessionprobe/internal/http"
	"github.com/aussiebroadwan/sessionprobe/internal/service"
	"github.com/aussiebroadwan/sessionprobe/internal/store"
	"github.com/aussiebroadwan/sessionprobe/internal/store/drivers/memory"
	"github.com/aussiebroadwan/sessionprobe/internal/store/drivers/sqlite"
	"github.com/aussiebroadwan/sessionprobe/pkg/httpx"
	"github.com/aussiebroadwan/sessionprobe/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application is the sessionprobe HTTP service and its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db             store.Store
	sessionService *service.SessionService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "sessionprobe",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	db, err := OpenStore(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	app.sessionService = &service.SessionService{
		Store:          app.db,
		FingerprintKey: []byte(cfg.FingerprintKey),
	}

	app.initHTTP()

	return app, nil
}

// Handler exposes the routed HTTP handler, mainly for in-process tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run serves HTTP until ctx is cancelled, a shutdown signal arrives or the
// server fails.
func (app *Application) Run(ctx context.Context) error {
	app.logger.Info("sessionprobe starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"storage", app.cfg.StorageDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
	case <-ctx.Done():
		app.logger.Info("context cancelled", "err", ctx.Err())
	}

	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes storage.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down sessionprobe...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "err", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "err", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing storage", "err", err)
		return err
	}

	app.logger.Info("sessionprobe stopped")
	return nil
}

// OpenStore opens the configured storage driver and applies its migrations.
func OpenStore(cfg Config, logger *slog.Logger) (store.Store, error) {
	switch cfg.StorageDriver {
	case DriverMemory:
		logger.Warn("using in-memory storage, contents are lost on exit")
		return memory.NewStore(), nil

	case DriverSQLite:
		db, err := sqlite.NewStore(SQLiteDSN(cfg.DatabaseFile))
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply database migrations: %w", err)
		}

		logger.Debug("database migrations applied", "file", cfg.DatabaseFile)
		return db, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func (app *Application) initHTTP() {
	// Profiles are read when routes are registered.
	httpx.LoadRateLimitsFromEnv()

	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)
	router.SessionService = app.sessionService
	router.DebugEndpoints = app.cfg.DebugEndpoints
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
