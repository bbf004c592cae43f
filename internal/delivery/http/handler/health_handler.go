package handler

import (
	"context"
	"time"

	"talentbridge/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is satisfied by the database handle and the cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports degraded (503) only when the database is down; a missing
// cache is reported but tolerated.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"database": "ok", "cache": "ok"}
	status := fiber.StatusOK

	if h.db == nil {
		checks["database"] = "disabled"
	} else if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "down"
		status = fiber.StatusServiceUnavailable
	}
	if h.cache == nil {
		checks["cache"] = "disabled"
	} else if err := h.cache.Ping(ctx); err != nil {
		checks["cache"] = "down"
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "degraded", checks)
	}
	return response.Success(c, status, response.MessageOK, checks)
}
