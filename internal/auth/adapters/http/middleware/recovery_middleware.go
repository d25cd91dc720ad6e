package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"authapi/internal/auth/domain/apperr"
	"authapi/pkg/logger"
)

const (
	msgServerPanic = "server panic"
	opRecover      = "recover"
)

// ErrPanic оборачивает значение паники обработчика.
var ErrPanic = errors.New("handler panicked")

// NewRecoveryMiddleware создает новое промежуточное ПО для восстановления после паники.
// Паника превращается в ошибку вида Internal и обрабатывается ErrorHandler приложения.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestCtx := ctx.Context()
				logger.Log(requestCtx).Error(requestCtx, msgServerPanic,
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)
				err = apperr.E(apperr.Internal, opRecover, fmt.Errorf("%w: %v", ErrPanic, r))
			}
		}()

		return ctx.Next()
	}
}
