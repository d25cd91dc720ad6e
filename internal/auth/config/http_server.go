package config

import (
	"fmt"
	"time"
)

// HTTPConfig конфигурация HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"AUTH_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"AUTH_HTTP_PORT" env-default:"5000"`
	BodyLimit    int           `yaml:"body_limit" env:"AUTH_HTTP_BODY_LIMIT" env-default:"10240"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"AUTH_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"AUTH_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	ProxyHeader  string        `yaml:"proxy_header" env:"AUTH_HTTP_PROXY_HEADER"`
	ReadyTimeout time.Duration `yaml:"ready_timeout" env:"AUTH_HTTP_READY_TIMEOUT" env-default:"2s"`
}

// GetAddress возвращает адрес для HTTP сервера.
func (h *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// WildcardOrigin разрешает запросы с любого origin.
const WildcardOrigin = "*"

// CORSConfig содержит настройки CORS.
type CORSConfig struct {
	Origin string `yaml:"origin" env:"AUTH_CORS_ORIGIN" env-default:"*"`
}

// RateLimitConfig содержит лимиты запросов с одного IP.
type RateLimitConfig struct {
	APILimit  int           `yaml:"api_limit" env:"AUTH_RATE_LIMIT_API" env-default:"100"`
	AuthLimit int           `yaml:"auth_limit" env:"AUTH_RATE_LIMIT_AUTH" env-default:"5"`
	Window    time.Duration `yaml:"window" env:"AUTH_RATE_LIMIT_WINDOW" env-default:"15m"`
}
