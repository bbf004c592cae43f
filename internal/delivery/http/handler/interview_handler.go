package handler

import (
	"time"

	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/domain/interview"
	"talentbridge/internal/pkg/response"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type InterviewHandler struct {
	uc usecase.InterviewUsecase
}

type scheduleRequest struct {
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Mode            string    `json:"mode"`
	Location        string    `json:"location"`
}

func NewInterviewHandler(uc usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(r fiber.Router, authed, employer fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/applications/:id/interviews", employer, h.Schedule)
	r.Get("/applications/:id/interviews", authed, h.List)
	r.Post("/interviews/:id/cancel", employer, h.Cancel)
	r.Post("/interviews/:id/complete", employer, h.Complete)
	r.Get("/me/interviews", authed, h.Upcoming)
}

func (h *InterviewHandler) Schedule(c fiber.Ctx) error {
	employerID, appID, err := userAndParam(c)
	if err != nil {
		return err
	}
	var req scheduleRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	iv, err := h.uc.Schedule(c.Context(), employerID, appID, usecase.ScheduleInterviewInput{
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Mode:            interview.Mode(req.Mode),
		Location:        req.Location,
	})
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Interview scheduled", dto.NewInterviewResponse(iv))
}

func (h *InterviewHandler) List(c fiber.Ctx) error {
	userID, appID, err := userAndParam(c)
	if err != nil {
		return err
	}
	items, err := h.uc.List(c.Context(), userID, appID)
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInterviewList(items))
}

func (h *InterviewHandler) Cancel(c fiber.Ctx) error {
	employerID, id, err := userAndParam(c)
	if err != nil {
		return err
	}
	iv, err := h.uc.Cancel(c.Context(), employerID, id)
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Interview cancelled", dto.NewInterviewResponse(iv))
}

func (h *InterviewHandler) Complete(c fiber.Ctx) error {
	employerID, id, err := userAndParam(c)
	if err != nil {
		return err
	}
	iv, err := h.uc.Complete(c.Context(), employerID, id)
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Interview completed", dto.NewInterviewResponse(iv))
}

func (h *InterviewHandler) Upcoming(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.uc.Upcoming(c.Context(), userID)
	if err != nil {
		return mapHiringUsecaseError(err)
	}

	out := make([]dto.UpcomingInterviewResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.UpcomingInterviewResponse{
			InterviewResponse: dto.NewInterviewResponse(it.Interview),
			JobID:             it.JobID,
			JobTitle:          it.JobTitle,
			CompanyName:       it.CompanyName,
			CandidateID:       it.CandidateID,
			CandidateName:     it.CandidateName,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
