package config

import "time"

// DefaultTokenTTL - время жизни токена, если AUTH_JWT_TOKEN_TTL не разбирается.
const DefaultTokenTTL = 24 * time.Hour

// JWTConfig содержит настройки для JWT токенов и хеширования паролей.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"AUTH_JWT_SECRET_KEY" env-required:"true"`
	TokenTTL   string `yaml:"token_ttl" env:"AUTH_JWT_TOKEN_TTL" env-default:"24h"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"AUTH_BCRYPT_COST" env-default:"10"`
}

// GetTokenTTL возвращает продолжительность времени жизни токена.
func (c *JWTConfig) GetTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.TokenTTL)
	if err != nil || duration <= 0 {
		return DefaultTokenTTL
	}
	return duration
}
