package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"authapi/internal/auth/adapters/http/response"
	"authapi/pkg/logger"
)

const (
	msgRequestStarted   = "request started"
	msgRequestCompleted = "request completed"
	msgRequestFailed    = "request failed"
)

// NewLoggerMiddleware создает новое промежуточное ПО для логирования HTTP запросов.
// Ошибка обработчика передается дальше, в ErrorHandler приложения.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		start := time.Now()

		log := logger.Log(requestCtx).With(
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()),
		)

		log.Debug(requestCtx, msgRequestStarted)

		err := ctx.Next()

		// Ответ на ошибку формирует ErrorHandler уже после middleware,
		// поэтому статус берется из вида ошибки.
		status := ctx.Response().StatusCode()
		if err != nil {
			status = response.StatusOfError(err)
		}

		logFields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}

		if err != nil {
			log.Info(requestCtx, msgRequestFailed, append(logFields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(requestCtx, msgRequestCompleted, logFields...)
		return nil
	}
}

