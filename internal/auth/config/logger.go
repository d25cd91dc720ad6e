package config

import (
	"strings"

	"authapi/pkg/logger"
)

// LoggingConfig содержит настройки логирования и режим запуска.
type LoggingConfig struct {
	Level string `yaml:"level" env:"AUTH_LOGGER_LEVEL" env-default:"info"`
	Env   string `yaml:"env" env:"AUTH_ENV" env-default:"development"`
}

// GetEnvironment получает строку режима в logger.Environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if strings.EqualFold(l.Env, string(logger.Production)) {
		return logger.Production
	}
	return logger.Development
}

// IsDevelopment сообщает, можно ли показывать клиенту детали серверных ошибок.
func (l *LoggingConfig) IsDevelopment() bool {
	return l.GetEnvironment() == logger.Development
}
