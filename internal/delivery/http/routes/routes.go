package routes

import (
	"talentbridge/internal/delivery/http/handler"
	"talentbridge/internal/delivery/http/middleware"
	v1 "talentbridge/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
	auth   *middleware.AuthMiddleware
	extra  map[string]fiber.Handler
}

func NewRegistry(health *handler.HealthHandler, handlers v1.Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{health: health, v1: handlers, auth: auth, extra: map[string]fiber.Handler{}}
}

// Mount adds a root-level GET endpoint such as /metrics or /ws.
func (r *Registry) Mount(path string, h fiber.Handler) {
	if h != nil {
		r.extra[path] = h
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	for path, h := range r.extra {
		app.Get(path, h)
	}
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.v1, r.auth)
}
