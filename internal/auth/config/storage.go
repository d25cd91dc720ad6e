package config

import (
	"time"

	"authapi/pkg/db/redis"
)

// Драйверы хранилища пользователей.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// StorageConfig выбирает хранилище пользователей.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"AUTH_STORAGE_DRIVER" env-default:"postgres"`
}

// RedisConfig содержит настройки подключения к Redis для лимитов запросов.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled" env:"AUTH_REDIS_ENABLED" env-default:"true"`
	Host     string        `yaml:"host" env:"AUTH_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"AUTH_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"AUTH_REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"AUTH_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"AUTH_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"AUTH_REDIS_TIMEOUT" env-default:"3s"`
}

// ClientConfig переводит настройки в конфигурацию общего клиента.
func (r *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
		PoolSize: r.PoolSize,
		Timeout:  r.Timeout,
	}
}
