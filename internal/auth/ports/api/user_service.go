package api

import (
	"context"

	"authapi/internal/auth/domain/entities"
	"authapi/internal/auth/domain/services"
)

// UserUseCase определяет основной порт для пользовательских операций
type UserUseCase interface {
	Authenticate(ctx context.Context, token string) (*services.Claims, error)

	GetUserProfile(ctx context.Context, userID string) (*entities.PublicUser, error)
}
