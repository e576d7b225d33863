package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/sessionprobe/internal/store"
	"github.com/aussiebroadwan/sessionprobe/pkg/cryptox"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	Env       string `env:"ENV"        envDefault:"dev"`  // dev, staging, prod
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"` // debug, info, warn, error
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // json, text

	Port                int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"` // memory, sqlite
	DatabaseFile  string `env:"DATABASE_FILE"  envDefault:"sessionprobe.db"`

	// DebugEndpoints mounts /debug/session, which reflects the caller's cookies.
	DebugEndpoints bool `env:"DEBUG_ENDPOINTS" envDefault:"false"`

	// FingerprintKey keys token fingerprints. Empty gives unkeyed digests.
	// At most cryptox.FingerprintKeySize bytes.
	FingerprintKey string `env:"FINGERPRINT_KEY"`

	// DefaultProfile is the profile CLI commands use when --profile is not given.
	DefaultProfile string `env:"DEFAULT_PROFILE" envDefault:"default"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: want %s or %s", c.StorageDriver, DriverMemory, DriverSQLite)
	}

	if c.StorageDriver == DriverSQLite && c.DatabaseFile == "" {
		return errors.New("DATABASE_FILE is required for the sqlite driver")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	if len(c.FingerprintKey) > cryptox.FingerprintKeySize {
		return fmt.Errorf("FINGERPRINT_KEY is %d bytes, at most %d are used", len(c.FingerprintKey), cryptox.FingerprintKeySize)
	}

	if err := store.ValidateProfile(c.DefaultProfile); err != nil {
		return fmt.Errorf("invalid DEFAULT_PROFILE: %w", err)
	}

	return nil
}

// SQLiteDSN is the modernc DSN for a database file with WAL and a busy timeout.
func SQLiteDSN(file string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", file)
}
