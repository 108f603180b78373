package handlers

import (
	"net/http"

	"tianguis/internal/caching"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandlers reports service liveness and dependency health.
type HealthHandlers struct {
	pool         *pgxpool.Pool
	cacheService caching.CacheService
}

func NewHealthHandlers(pool *pgxpool.Pool, cacheService caching.CacheService) *HealthHandlers {
	return &HealthHandlers{pool: pool, cacheService: cacheService}
}

// Health handles GET /health. The cache is optional, so a redis failure only
// degrades the status; a database failure makes the service unhealthy.
func (h *HealthHandlers) Health(c echo.Context) error {
	ctx := c.Request().Context()

	status := "ok"
	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}

	if err := h.pool.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		status = "unhealthy"
	}
	if err := h.cacheService.Ping(ctx); err != nil {
		checks["cache"] = err.Error()
		if status == "ok" {
			status = "degraded"
		}
	}

	code := http.StatusOK
	if status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, echo.Map{
		"status": status,
		"checks": checks,
	})
}

// Ready handles GET /health/ready. Readiness requires the database only.
func (h *HealthHandlers) Ready(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.pool.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not ready"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
}
