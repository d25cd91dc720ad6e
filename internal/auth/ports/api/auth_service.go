package api

import (
	"context"

	"authapi/internal/auth/domain/entities"
)

// AuthUseCase определяет основной порт для операций аутентификации.
// Payload - декодированное тело запроса, проверка выполняется внутри сценария.
type AuthUseCase interface {
	Signup(ctx context.Context, payload map[string]any) (*entities.AuthResult, error)

	Login(ctx context.Context, payload map[string]any) (*entities.AuthResult, error)
}
