package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"authapi/internal/auth/domain/apperr"
	"authapi/internal/auth/domain/services"
	"authapi/internal/auth/ports/api"
)

const (
	bearerPrefix = "Bearer "
	claimsKey    = "authClaims"
	opBearer     = "bearer auth"
)

// Ошибки разбора заголовка Authorization.
var (
	ErrNoAuthHeader       = errors.New("no authorization header provided")
	ErrInvalidTokenFormat = errors.New("invalid token format")
)

// NewAuthMiddleware проверяет bearer-токен и сохраняет его данные в Locals.
func NewAuthMiddleware(users api.UserUseCase) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		if header == "" {
			return apperr.E(apperr.Unauthenticated, opBearer, ErrNoAuthHeader)
		}

		if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			return apperr.E(apperr.Unauthenticated, opBearer, ErrInvalidTokenFormat)
		}

		claims, err := users.Authenticate(ctx.Context(), strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			return err
		}

		ctx.Locals(claimsKey, claims)
		return ctx.Next()
	}
}

// ClaimsFrom возвращает данные токена, сохраненные NewAuthMiddleware.
func ClaimsFrom(ctx fiber.Ctx) (*services.Claims, bool) {
	claims, ok := ctx.Locals(claimsKey).(*services.Claims)
	return claims, ok && claims != nil
}
