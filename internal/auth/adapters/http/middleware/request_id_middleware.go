// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"authapi/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware принимает X-Request-ID клиента или генерирует новый,
// кладет его в контекст запроса и возвращает в ответе.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		id := logger.AcceptRequestID(ctx.Get(HeaderRequestID))

		ctx.SetContext(logger.NewRequestIDContext(ctx.Context(), id))
		ctx.Set(HeaderRequestID, id)

		return ctx.Next()
	}
}
