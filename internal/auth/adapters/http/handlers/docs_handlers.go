package handlers

import (
	_ "embed"

	"github.com/gofiber/fiber/v3"
)

//go:embed openapi.json
var openAPIDocument []byte

// Docs отдает описание API в формате OpenAPI 3.
func Docs(ctx fiber.Ctx) error {
	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return ctx.Status(fiber.StatusOK).Send(openAPIDocument)
}
