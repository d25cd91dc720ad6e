// Package services предоставляет фабрику для создания и доступа к различным сервисам аутентификации,
// таким как сервисы работы с паролями и JWT токенами.
package services

import (
	"fmt"
	"time"

	"authapi/internal/auth/ports/services"
)

const errCtxNewServiceFactory = "creating service factory"

// ServiceFactory создает все необходимые сервисы для аутентификации.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
}

// NewServiceFactory создает новую фабрику сервисов. Пустой ключ подписи прерывает создание.
func NewServiceFactory(jwtSecretKey string, tokenTTL time.Duration, bcryptCost int, opts ...JWTOption) (*ServiceFactory, error) {
	tokenService, err := NewJWT(jwtSecretKey, tokenTTL, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxNewServiceFactory, err)
	}

	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    tokenService,
	}, nil
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}
