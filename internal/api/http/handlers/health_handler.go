package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qmdesk/complaint-service/internal/observability"
	"github.com/qmdesk/complaint-service/internal/persistence"
)

// HealthHandler serves liveness, readiness and the in-memory counters.
type HealthHandler struct {
	pg      *persistence.Postgres
	redis   *persistence.Redis
	metrics *observability.Metrics
	version string
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(pg *persistence.Postgres, redis *persistence.Redis, metrics *observability.Metrics, version string) *HealthHandler {
	return &HealthHandler{pg: pg, redis: redis, metrics: metrics, version: version}
}

// Live reports process liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "version": h.version})
}

// Ready reports dependency readiness. Postgres is required; Redis is a cache
// and only degrades, so its state is reported but never fails readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx := c.UserContext()

	pgStatus := "ok"
	ready := true
	if h.pg == nil || h.pg.Pool == nil {
		pgStatus = "not configured"
		ready = false
	} else if err := h.pg.Pool.Ping(ctx); err != nil {
		pgStatus = "unreachable"
		ready = false
	}

	redisStatus := "ok"
	if err := h.redis.Ping(ctx); err != nil {
		redisStatus = "unreachable"
	}

	status := fiber.StatusOK
	if !ready {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"postgres": pgStatus,
		"redis":    redisStatus,
	})
}

// Metrics dumps the request, error and cache counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	requests, errs, hits, misses := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests":     requests,
		"errors":       errs,
		"cache_hits":   hits,
		"cache_misses": misses,
	})
}
