package handler

import (
	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/pkg/response"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc usecase.DashboardUsecase
}

func NewDashboardHandler(uc usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router, employer fiber.Handler) {
	if r == nil {
		return
	}
	r.Get("/employer/dashboard", employer, h.Get)
}

func (h *DashboardHandler) Get(c fiber.Ctx) error {
	employerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	d, err := h.uc.Get(c.Context(), employerID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	byStatus := make(map[string]int, len(d.ApplicantsByStatus))
	for s, n := range d.ApplicantsByStatus {
		byStatus[string(s)] = n
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.DashboardResponse{
		OpenJobs:           d.OpenJobs,
		ClosedJobs:         d.ClosedJobs,
		ApplicantsByStatus: byStatus,
		ActiveApplicants:   d.ActiveApplicants,
		AverageMatchScore:  d.AverageMatchScore,
		UpcomingInterviews: d.UpcomingInterviews,
		PendingOffers:      d.PendingOffers,
	})
}
