package handler

import (
	"context"
	"time"

	"trivia-api/internal/domain"
	"trivia-api/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports store reachability
type HealthHandler struct {
	store domain.HealthChecker
}

func NewHealthHandler(store domain.HealthChecker) *HealthHandler {
	return &HealthHandler{store: store}
}

// Healthz godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) Healthz(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logger.Get().Warn("Store ping failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
