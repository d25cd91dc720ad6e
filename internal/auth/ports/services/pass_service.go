package services

import "context"

// PasswordService хэширует и проверяет пароли.
type PasswordService interface {
	// Hash возвращает хэш пароля; пустой пароль - ошибка.
	Hash(ctx context.Context, password string) (string, error)

	// Verify сравнивает пароль с хэшем за постоянное время. Несовпадение дает
	// (false, nil), ошибка означает поврежденный хэш или сбой алгоритма.
	Verify(ctx context.Context, password, hash string) (bool, error)
}
