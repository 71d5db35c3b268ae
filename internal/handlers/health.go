package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const healthTimeout = 2 * time.Second

// HealthChecker is implemented by every dependency the service reports on.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// PoolStatsProvider exposes redis pool counters.
type PoolStatsProvider interface {
	GetStats() *redis.PoolStats
}

type HealthHandler struct {
	checks map[string]HealthChecker
	pool   PoolStatsProvider
}

func NewHealthHandler(checks map[string]HealthChecker, pool PoolStatsProvider) *HealthHandler {
	return &HealthHandler{checks: checks, pool: pool}
}

// HealthCheck answers 200 when every dependency responds and 503 otherwise.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status, code := "ok", fiber.StatusOK
	services := fiber.Map{}
	for _, name := range names {
		if err := h.checks[name].HealthCheck(ctx); err != nil {
			services[name] = "unavailable"
			status, code = "degraded", fiber.StatusServiceUnavailable
			continue
		}
		services[name] = "connected"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"services": services,
	})
}

func (h *HealthHandler) CacheStats(c *fiber.Ctx) error {
	if h.pool == nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	poolStats := h.pool.GetStats()

	return c.JSON(fiber.Map{
		"pool_stats": fiber.Map{
			"hits":        poolStats.Hits,
			"misses":      poolStats.Misses,
			"timeouts":    poolStats.Timeouts,
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
			"stale_conns": poolStats.StaleConns,
		},
	})
}
