// Package handlers содержит HTTP обработчики сервиса аутентификации.
package handlers

import (
	"github.com/gofiber/fiber/v3"

	"authapi/internal/auth/adapters/http/middleware"
	"authapi/internal/auth/adapters/http/response"
	"authapi/internal/auth/domain/apperr"
	"authapi/internal/auth/domain/entities"
	"authapi/internal/auth/domain/validation"
	"authapi/internal/auth/ports/api"
	"authapi/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerSignup     = "auth handler: signup"
	LogHandlerLogin      = "auth handler: login"
	LogHandlerGetProfile = "auth handler: get profile"

	opDecode = "decoding body"
	opMe     = "me"
)

// AuthResponse - данные успешной регистрации или входа.
type AuthResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// ProfileResponse - данные профиля пользователя.
type ProfileResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func authResponse(result *entities.AuthResult) AuthResponse {
	return AuthResponse{
		ID:    result.User.ID,
		Email: result.User.Email,
		Name:  result.User.Name,
		Token: result.Token,
	}
}

// AuthHandler содержит HTTP обработчики для авторизации.
type AuthHandler struct {
	auth   api.AuthUseCase
	users  api.UserUseCase
	shaper *response.Shaper
}

// NewAuthHandler создает новый экземпляр обработчика авторизации.
func NewAuthHandler(auth api.AuthUseCase, users api.UserUseCase, shaper *response.Shaper) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		users:  users,
		shaper: shaper,
	}
}

// decodePayload разбирает тело как JSON-объект. Все остальное - MalformedPayload.
func decodePayload(ctx fiber.Ctx) (map[string]any, error) {
	var payload map[string]any
	if err := ctx.Bind().JSON(&payload); err != nil || payload == nil {
		return nil, apperr.Validation(opDecode, validation.Malformed())
	}
	return payload, nil
}

// Signup обрабатывает запрос на регистрацию нового пользователя.
func (h *AuthHandler) Signup(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerSignup)

	payload, err := decodePayload(ctx)
	if err != nil {
		return err
	}

	result, err := h.auth.Signup(requestCtx, payload)
	if err != nil {
		return err
	}

	return h.shaper.Send(ctx, fiber.StatusCreated, authResponse(result))
}

// Login обрабатывает запрос на вход пользователя.
func (h *AuthHandler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerLogin)

	payload, err := decodePayload(ctx)
	if err != nil {
		return err
	}

	result, err := h.auth.Login(requestCtx, payload)
	if err != nil {
		return err
	}

	return h.shaper.Send(ctx, fiber.StatusOK, authResponse(result))
}

// Me возвращает профиль владельца bearer-токена.
func (h *AuthHandler) Me(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetProfile)

	claims, ok := middleware.ClaimsFrom(ctx)
	if !ok {
		return apperr.E(apperr.Unauthenticated, opMe, nil)
	}

	profile, err := h.users.GetUserProfile(requestCtx, claims.UserID)
	if err != nil {
		return err
	}

	return h.shaper.Send(ctx, fiber.StatusOK, ProfileResponse{
		ID:    profile.ID,
		Email: profile.Email,
		Name:  profile.Name,
	})
}
