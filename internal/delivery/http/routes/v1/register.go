package v1

import (
	"talentbridge/internal/delivery/http/handler"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Skills       *handler.SkillHandler
	Jobs         *handler.JobsHandler
	Match        *handler.MatchHandler
	Applications *handler.ApplicationHandler
	Interviews   *handler.InterviewHandler
	Offers       *handler.OfferHandler
	Notes        *handler.NoteHandler
	Dashboard    *handler.DashboardHandler
}

// Register mounts every /api/v1 route. Guards are attached per route so
// public and protected endpoints can share a path prefix.
func Register(r fiber.Router, h Handlers, auth *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	authed := auth.Middleware()
	employer := auth.RequireRole(user.RoleEmployer)
	student := auth.RequireRole(user.RoleStudent)

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Users != nil {
		h.Users.RegisterRoutes(r, authed)
	}
	if h.Skills != nil {
		h.Skills.RegisterRoutes(r)
	}
	if h.Match != nil {
		h.Match.RegisterRoutes(r)
	}
	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(r, employer, student)
	}
	if h.Applications != nil {
		h.Applications.RegisterRoutes(r, authed, employer, student)
	}
	if h.Interviews != nil {
		h.Interviews.RegisterRoutes(r, authed, employer)
	}
	if h.Offers != nil {
		h.Offers.RegisterRoutes(r, authed, employer, student)
	}
	if h.Notes != nil {
		h.Notes.RegisterRoutes(r, employer)
	}
	if h.Dashboard != nil {
		h.Dashboard.RegisterRoutes(r, employer)
	}
}
