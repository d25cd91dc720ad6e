package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
)

// Политики заголовков безопасности.
const (
	contentSecurityPolicy = "default-src 'self';base-uri 'self';font-src 'self' https: data:;" +
		"form-action 'self';frame-ancestors 'self';img-src 'self' data:;object-src 'none';" +
		"script-src 'self';script-src-attr 'none';style-src 'self' https: 'unsafe-inline';upgrade-insecure-requests"
	hstsMaxAgeSeconds = 15552000
	wildcardOrigin    = "*"
)

// NewSecurityHeadersMiddleware выставляет заголовки безопасности (CSP, запрет фреймов, nosniff, HSTS).
func NewSecurityHeadersMiddleware() fiber.Handler {
	return helmet.New(helmet.Config{
		XSSProtection:             "0",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "DENY",
		ContentSecurityPolicy:     contentSecurityPolicy,
		ReferrerPolicy:            "same-origin",
		CrossOriginEmbedderPolicy: "require-corp",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-site",
		OriginAgentCluster:        "?1",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
		HSTSMaxAge:                hstsMaxAgeSeconds,
	})
}

// NewCORSMiddleware разрешает запросы с origin. Учетные данные разрешаются
// только для явно заданного origin.
func NewCORSMiddleware(origin string) fiber.Handler {
	if origin == "" {
		origin = wildcardOrigin
	}
	return cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		AllowHeaders:     []string{fiber.HeaderContentType, fiber.HeaderAuthorization, HeaderRequestID},
		ExposeHeaders:    []string{HeaderRequestID, HeaderRateLimitLimit, HeaderRateLimitRemaining, HeaderRateLimitReset, HeaderRetryAfter},
		AllowCredentials: origin != wildcardOrigin,
	})
}
