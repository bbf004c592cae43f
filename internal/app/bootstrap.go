package app

import (
	"fmt"
	"strings"

	"talentbridge/internal/delivery/http/handler"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/delivery/http/routes"
	v1 "talentbridge/internal/delivery/http/routes/v1"
	"talentbridge/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(c.Logger)
	app.Use(errMw.Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewMetricsMiddleware(c.Metrics).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	uc := c.Usecases
	reg := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		v1.Handlers{
			Auth:         handler.NewAuthHandler(uc.Auth),
			Users:        handler.NewUserHandler(uc.Users),
			Skills:       handler.NewSkillHandler(uc.Skills),
			Jobs:         handler.NewJobsHandler(uc.JobBoard, uc.Jobs, uc.Match),
			Match:        handler.NewMatchHandler(uc.Match),
			Applications: handler.NewApplicationHandler(uc.Applications),
			Interviews:   handler.NewInterviewHandler(uc.Interviews),
			Offers:       handler.NewOfferHandler(uc.Offers),
			Notes:        handler.NewNoteHandler(uc.Notes),
			Dashboard:    handler.NewDashboardHandler(uc.Dashboard),
		},
		middleware.NewAuthMiddleware(c.JWT),
	)
	reg.Mount("/metrics", adaptor.HTTPHandler(c.Metrics.Handler()))
	reg.Mount("/ws", ws.NewHandler(c.Hub, c.JWT, c.Logger).Handle)
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
