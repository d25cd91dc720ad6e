// Package entities содержит сущности домена аутентификации.
package entities

import (
	"errors"
	"time"
)

// Ошибки хранилища пользователей.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user with this email already exists")
)

// User - сохраненная учетная запись.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public возвращает внешнее представление пользователя без хэша пароля.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// PublicUser - поля пользователя, которые можно отдавать наружу.
type PublicUser struct {
	ID    string
	Email string
	Name  string
}

// SignupRequest - проверенные данные регистрации.
type SignupRequest struct {
	Email    string
	Password string
	Name     string
}

// LoginRequest - проверенные данные входа.
type LoginRequest struct {
	Email    string
	Password string
}

// AuthResult - результат успешной регистрации или входа.
type AuthResult struct {
	Token string
	User  PublicUser
}
