package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"authapi/pkg/logger"
)

const (
	statusOK          = "ok"
	statusReady       = "ready"
	statusUnavailable = "unavailable"

	msgDependencyDown = "readiness check failed"

	defaultReadyTimeout = 2 * time.Second
)

// ReadyCheck - проверка доступности зависимости.
type ReadyCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler отвечает на проверки живости и готовности.
type HealthHandler struct {
	checks  []ReadyCheck
	timeout time.Duration
}

// NewHealthHandler создает обработчик проверок.
func NewHealthHandler(timeout time.Duration, checks ...ReadyCheck) *HealthHandler {
	if timeout <= 0 {
		timeout = defaultReadyTimeout
	}
	return &HealthHandler{checks: checks, timeout: timeout}
}

// Health всегда отвечает 200, пока процесс обслуживает запросы.
func (h *HealthHandler) Health(ctx fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"status": statusOK})
}

// Ready проверяет зависимости и отвечает 503, если хотя бы одна недоступна.
func (h *HealthHandler) Ready(ctx fiber.Ctx) error {
	requestCtx, cancel := context.WithTimeout(ctx.Context(), h.timeout)
	defer cancel()

	status := statusReady
	code := fiber.StatusOK
	results := make(map[string]string, len(h.checks))

	for _, check := range h.checks {
		if err := check.Ping(requestCtx); err != nil {
			logger.Log(requestCtx).Warn(requestCtx, msgDependencyDown, zap.String("dependency", check.Name), zap.Error(err))
			results[check.Name] = statusUnavailable
			status = statusUnavailable
			code = fiber.StatusServiceUnavailable
			continue
		}
		results[check.Name] = statusOK
	}

	return ctx.Status(code).JSON(fiber.Map{"status": status, "checks": results})
}
