package config

import (
	"time"
)

// DefaultShutdownTimeout используется, если AUTH_GRACEFUL_SHUTDOWN_TIMEOUT не положителен.
const DefaultShutdownTimeout = 5 * time.Second

// ShutdownConfig содержит настройки для graceful shutdown.
type ShutdownConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"AUTH_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// GetTimeout возвращает время на завершение открытых запросов и закрытие соединений.
func (s *ShutdownConfig) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultShutdownTimeout
	}
	return s.Timeout
}
