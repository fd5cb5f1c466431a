package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port           string        `env:"PORT,            default=8080"`
	Env            string        `env:"ENV,             default=development"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=15s"`

	Auth          AuthConfig
	Database      DatabaseConfig
	Mongo         MongoConfig
	Redis         RedisConfig
	ErrorTracking ErrorTrackingConfig
}

type AuthConfig struct {
	SecretKey      string        `env:"SECRET_KEY,       required"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL, default=30m"`
	BcryptCost     int           `env:"BCRYPT_COST,      default=10"`
}

type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER,         default=postgres"`
	User     string `env:"POSTGRES_USER,     default=postgres"`
	Password string `env:"POSTGRES_PASSWORD, default=postgres"`
	Host     string `env:"POSTGRES_HOST,     default=localhost"`
	Port     string `env:"POSTGRES_PORT,     default=5432"`
	Name     string `env:"POSTGRES_DB,       default=bookings"`
	SSLMode  string `env:"POSTGRES_SSLMODE,  default=disable"`

	SQLitePath string `env:"SQLITE_PATH, default=bookings.db"`

	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,    default=20"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,    default=5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME, default=1h"`
}

// DSN returns the postgres connection URL.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// MongoConfig points at the audit store. An empty URI disables auditing.
type MongoConfig struct {
	URI          string `env:"MONGO_URI"`
	Database     string `env:"MONGO_DB,      default=booking_audit"`
	AuditWorkers int    `env:"AUDIT_WORKERS, default=4"`
}

// RedisConfig points at the idempotency store. An empty address disables it.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type ErrorTrackingConfig struct {
	SentryDSN string `env:"SENTRY_DSN"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.Auth.BcryptCost)
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}
