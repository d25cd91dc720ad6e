// Package http содержит компоненты для HTTP сервера.
package http

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"authapi/internal/auth/adapters/http/handlers"
	"authapi/internal/auth/adapters/http/middleware"
	"authapi/internal/auth/adapters/http/response"
	"authapi/internal/auth/adapters/ratelimit"
	"authapi/internal/auth/domain/apperr"
	"authapi/internal/auth/ports/api"
)

const (
	appName          = "authapi"
	defaultBodyLimit = 10 * 1024
	opRoute          = "route"
)

// ServerConfig - параметры fiber.App.
type ServerConfig struct {
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ProxyHeader  string
}

// NewApp создает fiber.App, ошибки которого оформляет shaper.
func NewApp(cfg ServerConfig, shaper *response.Shaper) *fiber.App {
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = defaultBodyLimit
	}
	return fiber.New(fiber.Config{
		AppName:      appName,
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ProxyHeader:  cfg.ProxyHeader,
		ErrorHandler: shaper.ErrorHandler,
	})
}

// Dependencies - все, что нужно маршрутизатору.
type Dependencies struct {
	Auth         api.AuthUseCase
	Users        api.UserUseCase
	Shaper       *response.Shaper
	Limiter      ratelimit.Limiter
	APIRule      ratelimit.Rule
	AuthRule     ratelimit.Rule
	CORSOrigin   string
	ReadyChecks  []handlers.ReadyCheck
	ReadyTimeout time.Duration
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Users, deps.Shaper)
	healthHandler := handlers.NewHealthHandler(deps.ReadyTimeout, deps.ReadyChecks...)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewSecurityHeadersMiddleware())
	app.Use(middleware.NewCORSMiddleware(deps.CORSOrigin))

	app.Get("/health", healthHandler.Health)
	app.Get("/health/ready", healthHandler.Ready)
	app.Get("/docs", handlers.Docs)

	apiRoutes := app.Group("/api")
	apiRoutes.Use(middleware.NewRateLimitMiddleware(deps.Limiter, deps.APIRule))

	authRoutes := apiRoutes.Group("/auth")
	authRoutes.Use(middleware.NewRateLimitMiddleware(deps.Limiter, deps.AuthRule))
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authHandler.Me, middleware.NewAuthMiddleware(deps.Users))

	// Обработчик для несуществующих маршрутов.
	app.Use(func(fiber.Ctx) error {
		return apperr.E(apperr.NotFound, opRoute, fiber.ErrNotFound)
	})
}
