// Package services содержит доменные типы и ошибки сервисов паролей и токенов.
package services

import (
	"errors"
	"time"
)

// TokenTTL - время жизни выданного токена.
const TokenTTL = 24 * time.Hour

// Ошибки проверки токена.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token has expired")
)

// ErrTokenGeneration возвращается при невозможности подписать токен.
var ErrTokenGeneration = errors.New("failed to generate token")

// Claims - данные, которые несет токен.
type Claims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
