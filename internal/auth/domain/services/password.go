package services

import "errors"

// Ошибки сервиса паролей.
var (
	ErrHashingFailed = errors.New("failed to hash password")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// DefaultBcryptCost - стоимость хэширования по умолчанию.
const DefaultBcryptCost = 10
