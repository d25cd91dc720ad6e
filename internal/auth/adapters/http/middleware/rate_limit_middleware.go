package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"authapi/internal/auth/adapters/ratelimit"
	"authapi/internal/auth/domain/apperr"
	"authapi/pkg/logger"
)

// Заголовки ограничения частоты.
const (
	HeaderRateLimitLimit     = "RateLimit-Limit"
	HeaderRateLimitRemaining = "RateLimit-Remaining"
	HeaderRateLimitReset     = "RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

const (
	msgLimiterUnavailable = "rate limiter unavailable, request allowed"
	msgRateLimited        = "rate limit exceeded"
	opRateLimit           = "rate limit"
)

// NewRateLimitMiddleware ограничивает частоту запросов с одного IP по правилу rule.
// Ошибка хранилища счетчиков не блокирует запрос.
func NewRateLimitMiddleware(limiter ratelimit.Limiter, rule ratelimit.Rule) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		ip := ctx.IP()

		decision, err := limiter.Allow(requestCtx, ip, rule)
		if err != nil {
			logger.Log(requestCtx).Warn(requestCtx, msgLimiterUnavailable,
				zap.String("rule", rule.Name), zap.Error(err))
		}

		reset := strconv.Itoa(ceilSeconds(decision.ResetAfter))
		ctx.Set(HeaderRateLimitLimit, strconv.Itoa(decision.Limit))
		ctx.Set(HeaderRateLimitRemaining, strconv.Itoa(decision.Remaining))
		ctx.Set(HeaderRateLimitReset, reset)

		if !decision.Allowed {
			logger.Log(requestCtx).Info(requestCtx, msgRateLimited,
				zap.String("rule", rule.Name), zap.String("ip", ip))
			ctx.Set(HeaderRetryAfter, reset)
			return apperr.E(apperr.RateLimited, opRateLimit, nil)
		}

		return ctx.Next()
	}
}

func ceilSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
