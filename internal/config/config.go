package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	LegalAPI LegalAPIConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `env:"APP_NAME" envDefault:"business-registry-dashboard"`
	Env                   string `env:"APP_ENV" envDefault:"development"`
	Host                  string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port                  string `env:"APP_PORT" envDefault:"8080"`
	Version               string `env:"APP_VERSION" envDefault:"dev"`
	RequestTimeoutSeconds int    `env:"HTTP_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN                string `env:"POSTGRES_DSN"`
	ApplicationName    string `env:"POSTGRES_APPLICATION_NAME" envDefault:"business-registry-dashboard"`
	MaxConns           int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	MinConns           int32  `env:"POSTGRES_MIN_CONNS" envDefault:"2"`
	RunMigrations      bool   `env:"POSTGRES_RUN_MIGRATIONS" envDefault:"true"`
	ConnMaxIdleSec     int32  `env:"POSTGRES_CONN_MAX_IDLE_SECONDS" envDefault:"30"`
	ConnMaxLifeSec     int32  `env:"POSTGRES_CONN_MAX_LIFE_SECONDS" envDefault:"300"`
	PingTimeoutSeconds int    `env:"POSTGRES_PING_TIMEOUT_SECONDS" envDefault:"2"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr               string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	Password           string `env:"REDIS_PASSWORD"`
	DB                 int    `env:"REDIS_DB" envDefault:"0"`
	PingTimeoutSeconds int    `env:"REDIS_PING_TIMEOUT_SECONDS" envDefault:"2"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// AuthConfig defines authentication and authorization parameters.
type AuthConfig struct {
	JWTSecret           string `env:"AUTH_JWT_SECRET" envDefault:"dev-secret"`
	RoleCacheTTLSeconds int    `env:"AUTHZ_CACHE_TTL_SECONDS" envDefault:"300"`
}

// LegalAPIConfig points at the legal entity REST API.
type LegalAPIConfig struct {
	BaseURL        string `env:"LEGAL_API_URL" envDefault:"http://127.0.0.1:8081/api/v2"`
	APIKey         string `env:"LEGAL_API_KEY"`
	TimeoutSeconds int    `env:"LEGAL_API_TIMEOUT_SECONDS" envDefault:"10"`
}

// Load reads configuration from the environment (and a .env file when present),
// applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// PingTimeout bounds startup and readiness pings against Postgres.
func (p PostgresConfig) PingTimeout() time.Duration {
	return pingTimeout(p.PingTimeoutSeconds)
}

// PingTimeout bounds startup and readiness pings against Redis.
func (r RedisConfig) PingTimeout() time.Duration {
	return pingTimeout(r.PingTimeoutSeconds)
}

func pingTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return 2 * time.Second
	}
	return time.Duration(seconds) * time.Second
}

// RoleCacheTTL returns how long account roles stay cached.
func (a AuthConfig) RoleCacheTTL() time.Duration {
	if a.RoleCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RoleCacheTTLSeconds) * time.Second
}

// Timeout returns the per-request timeout for legal API calls.
func (l LegalAPIConfig) Timeout() time.Duration {
	if l.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(l.TimeoutSeconds) * time.Second
}
