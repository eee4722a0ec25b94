package handlers

import (
	"context"
	"net/http"
	"time"

	"toolnav/internal/caching"
	"toolnav/internal/middleware"
	"toolnav/internal/repositories"
	"toolnav/internal/services"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const probeTimeout = 3 * time.Second

// Prober is the part of the pool the health check touches
type Prober interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db         Prober
	limiter    caching.RateLimiter
	images     services.ImageStore
	generation string
	logger     *zap.Logger
}

func NewHealthHandlers(db Prober, limiter caching.RateLimiter, images services.ImageStore, generation string, logger *zap.Logger) *HealthHandlers {
	return &HealthHandlers{
		db:         db,
		limiter:    limiter,
		images:     images,
		generation: generation,
		logger:     logger,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status       string `json:"status"`
	Database     string `json:"database"`
	Architecture string `json:"architecture,omitempty"`
	Redis        string `json:"redis,omitempty"`
	Storage      string `json:"storage,omitempty"`
	Error        string `json:"error,omitempty"`
	Timestamp    string `json:"timestamp"`
}

// HealthCheck always answers 200 so monitors can tell a degraded dependency
// from a dead process. A database failure makes the service unhealthy; a
// failing cache or image store only degrades it.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:       "healthy",
		Database:     "connected",
		Architecture: architecture(h.generation),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := h.db.Exec(ctx, "SELECT 1"); err != nil {
		h.logger.Error("database health probe failed", zap.Error(err))
		health.Status = "unhealthy"
		health.Database = "disconnected"
		health.Error = err.Error()
		health.Architecture = ""
		return c.JSON(http.StatusOK, health)
	}

	if h.limiter != nil {
		health.Redis = "connected"
		if err := h.limiter.Ping(ctx); err != nil {
			h.logger.Warn("redis health probe failed", zap.Error(err))
			health.Redis = "disconnected"
			health.Status = "degraded"
		}
	}

	if h.images != nil {
		health.Storage = "available"
		if err := h.images.Ping(ctx); err != nil {
			h.logger.Warn("image store health probe failed", zap.Error(err))
			health.Storage = "unavailable"
			health.Status = "degraded"
		}
	}

	return c.JSON(http.StatusOK, health)
}

// Root handles GET /
func (h *HealthHandlers) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "AI Tools Navigator API - Multilingual",
		"version": middleware.APIVersion,
	})
}

func architecture(generation string) string {
	if generation == repositories.GenerationJSON {
		return "json"
	}
	return "multilingual"
}
