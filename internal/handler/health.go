package handler

import (
	"context"
	"time"

	"trivia-api/internal/dto"
	"trivia-api/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Pinger is anything with a liveness probe, e.g. *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// CachePinger matches domain.Cache's probe.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports store and cache reachability
type HealthHandler struct {
	db    Pinger
	cache CachePinger
}

// NewHealthHandler creates a HealthHandler. cache may be nil when caching is disabled.
func NewHealthHandler(db Pinger, cache CachePinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health godoc
// @Summary Liveness and dependency check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Checks: map[string]string{}}
	status := fiber.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		logger.Get().Warn("Database health check failed", zap.Error(err))
		resp.Checks["database"] = err.Error()
		resp.Status = "unavailable"
		status = fiber.StatusServiceUnavailable
	} else {
		resp.Checks["database"] = "ok"
	}

	switch {
	case h.cache == nil:
		resp.Checks["cache"] = "disabled"
	case h.cache.Ping(ctx) != nil:
		// cache is best-effort; degraded but still serving
		resp.Checks["cache"] = "unreachable"
	default:
		resp.Checks["cache"] = "ok"
	}

	return c.Status(status).JSON(resp)
}
