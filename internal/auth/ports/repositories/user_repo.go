package repositories

import (
	"context"

	"authapi/internal/auth/domain/entities"
)

// UserRepository определяет интерфейс для операций сохранения данных пользователем.
// Create возвращает entities.ErrDuplicateEmail, если email уже занят,
// Find* возвращают entities.ErrUserNotFound, если пользователь не найден.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	Ping(ctx context.Context) error
}
