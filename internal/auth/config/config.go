// Package config содержит конфигурацию для аутентификационного сервиса.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"authapi/internal/auth/domain/apperr"
	pkgconfig "authapi/pkg/config"
	"authapi/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName         = "auth"
	LogConfigValidated  = "configuration validated"
	ErrFailedLoadConfig = "failed to load configuration"

	opValidate = "config.validate"
)

// Ошибки валидации конфигурации.
var (
	ErrEmptySecret       = errors.New("jwt secret key is empty")
	ErrUnknownDriver     = errors.New("unknown storage driver")
	ErrNonPositiveLimit  = errors.New("rate limit must be positive")
	ErrNonPositiveWindow = errors.New("rate limit window must be positive")
	ErrInvalidOrigin     = errors.New("invalid cors origin")
	ErrInvalidPoolSize   = errors.New("postgres min_conn must not exceed max_conn")
	ErrInvalidPort       = errors.New("http port out of range")
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Logging   LoggingConfig   `yaml:"logging"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Storage   StorageConfig   `yaml:"storage"`
}

// Load загружает конфигурацию из переменных окружения и необязательных env-файлов
// и проверяет ее.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envFiles...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, LogConfigValidated,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("env", cfg.Logging.Env),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("cors_origin", cfg.CORS.Origin),
		zap.Int("api_rate_limit", cfg.RateLimit.APILimit),
		zap.Int("auth_rate_limit", cfg.RateLimit.AuthLimit),
		zap.Duration("shutdown_timeout", cfg.Shutdown.GetTimeout()))

	return cfg, nil
}

// Validate проверяет значения, которые cleanenv проверить не может.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.SecretKey) == "" {
		return apperr.E(apperr.ConfigurationError, opValidate, ErrEmptySecret)
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Postgres.MinConn > c.Postgres.MaxConn {
			return apperr.E(apperr.ConfigurationError, opValidate, ErrInvalidPoolSize)
		}
	case DriverMemory:
	default:
		return apperr.E(apperr.ConfigurationError, opValidate,
			fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.Driver))
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return apperr.E(apperr.ConfigurationError, opValidate, ErrInvalidPort)
	}

	if c.RateLimit.APILimit <= 0 || c.RateLimit.AuthLimit <= 0 {
		return apperr.E(apperr.ConfigurationError, opValidate, ErrNonPositiveLimit)
	}
	if c.RateLimit.Window <= 0 {
		return apperr.E(apperr.ConfigurationError, opValidate, ErrNonPositiveWindow)
	}

	if !validOrigin(c.CORS.Origin) {
		return apperr.E(apperr.ConfigurationError, opValidate,
			fmt.Errorf("%w: %q", ErrInvalidOrigin, c.CORS.Origin))
	}

	return nil
}

// validOrigin принимает "*" или origin вида scheme://host[:port] без пути.
func validOrigin(origin string) bool {
	if origin == WildcardOrigin {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" || strings.Contains(u.Host, "*") {
		return false
	}
	return (u.Path == "" || u.Path == "/") && u.RawQuery == "" && u.Fragment == "" && u.User == nil
}
