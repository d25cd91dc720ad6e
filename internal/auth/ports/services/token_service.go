package services

import (
	"context"

	"authapi/internal/auth/domain/services"
)

// TokenService определяет интерфейс для операций с токенами JWT.
type TokenService interface {
	Issue(ctx context.Context, userID, email string) (string, error)

	Verify(ctx context.Context, token string) (*services.Claims, error)
}
