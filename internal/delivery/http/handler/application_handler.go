package handler

import (
	"errors"

	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/domain/application"
	"talentbridge/internal/pkg/response"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type applyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router, authed, employer, student fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/jobs/:id/applications", student, h.Apply)
	r.Get("/jobs/:id/applicants", employer, h.ListApplicants)
	r.Get("/applications/:id", authed, h.Detail)
	r.Patch("/applications/:id/status", employer, h.UpdateStatus)
	r.Post("/applications/:id/withdraw", student, h.Withdraw)
	r.Get("/me/applications", student, h.Tracker)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	studentID, jobID, err := userAndParam(c)
	if err != nil {
		return err
	}
	var req applyRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return badRequest(err)
		}
	}

	app, err := h.uc.Apply(c.Context(), studentID, jobID, req.CoverLetter)
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted", dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) ListApplicants(c fiber.Ctx) error {
	employerID, jobID, err := userAndParam(c)
	if err != nil {
		return err
	}
	minScore, err := parseQueryIntStrict(c, "min_score", 0)
	if err != nil {
		return badRequest(err)
	}

	items, err := h.uc.ListApplicants(c.Context(), employerID, jobID, usecase.ApplicantQuery{
		Status:   application.Status(c.Query("status")),
		MinScore: minScore,
		Sort:     c.Query("sort"),
	})
	if err != nil {
		return mapHiringUsecaseError(err)
	}

	out := make([]dto.ApplicantResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ApplicantResponse{
			ApplicationID:  it.ApplicationID,
			CandidateID:    it.CandidateID,
			CandidateName:  it.CandidateName,
			CandidateEmail: it.CandidateEmail,
			Status:         string(it.Status),
			MatchScore:     it.Score,
			Badge:          string(it.Badge),
			AppliedAt:      it.AppliedAt,
			UpdatedAt:      it.UpdatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ApplicationHandler) Detail(c fiber.Ctx) error {
	userID, appID, err := userAndParam(c)
	if err != nil {
		return err
	}
	d, err := h.uc.Detail(c.Context(), userID, appID)
	if err != nil {
		return mapHiringUsecaseError(err)
	}

	out := dto.ApplicationDetailResponse{
		Application:    dto.NewApplicationResponse(d.Application),
		Job:            dto.NewJobResponse(d.Job),
		CandidateName:  d.CandidateName,
		CandidateEmail: d.CandidateEmail,
		Match:          dto.NewMatchResponse(d.Breakdown),
		Interviews:     dto.NewInterviewList(d.Interviews),
		Offers:         dto.NewOfferList(d.Offers),
	}
	if d.Notes != nil {
		out.Notes = dto.NewNoteList(d.Notes)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	employerID, appID, err := userAndParam(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	app, err := h.uc.UpdateStatus(c.Context(), employerID, appID, application.Status(req.Status))
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) Withdraw(c fiber.Ctx) error {
	studentID, appID, err := userAndParam(c)
	if err != nil {
		return err
	}
	app, err := h.uc.Withdraw(c.Context(), studentID, appID)
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application withdrawn", dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) Tracker(c fiber.Ctx) error {
	studentID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.uc.Tracker(c.Context(), studentID)
	if err != nil {
		return mapHiringUsecaseError(err)
	}

	out := make([]dto.TrackerCardResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.TrackerCardResponse{
			ApplicationID:   it.ApplicationID,
			JobID:           it.JobID,
			JobTitle:        it.JobTitle,
			CompanyName:     it.CompanyName,
			JobOpen:         it.JobOpen,
			Status:          string(it.Status),
			MatchScore:      it.Score,
			Badge:           string(it.Badge),
			NextInterviewAt: it.NextInterviewAt,
			AppliedAt:       it.AppliedAt,
			UpdatedAt:       it.UpdatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// mapHiringUsecaseError covers applications, interviews, offers and notes,
// which share their access and state errors.
func mapHiringUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	type mapping struct {
		target  error
		status  int
		message string
	}
	table := []mapping{
		{usecase.ErrInvalidInput, fiber.StatusBadRequest, "Bad request"},
		{usecase.ErrForbidden, fiber.StatusForbidden, "Forbidden"},
		{usecase.ErrJobNotFound, fiber.StatusNotFound, "Job not found"},
		{usecase.ErrApplicationNotFound, fiber.StatusNotFound, "Application not found"},
		{usecase.ErrInterviewNotFound, fiber.StatusNotFound, "Interview not found"},
		{usecase.ErrOfferNotFound, fiber.StatusNotFound, "Offer not found"},
		{usecase.ErrNoteNotFound, fiber.StatusNotFound, "Note not found"},
		{usecase.ErrJobClosed, fiber.StatusConflict, "Job is closed"},
		{usecase.ErrAlreadyApplied, fiber.StatusConflict, "Already applied to this job"},
		{usecase.ErrApplicationChanged, fiber.StatusConflict, "Application was changed by another request"},
		{usecase.ErrInterviewOverlap, fiber.StatusConflict, "Interview overlaps another scheduled interview"},
		{usecase.ErrInterviewNotScheduled, fiber.StatusConflict, "Interview is no longer scheduled"},
		{usecase.ErrOfferPending, fiber.StatusConflict, "A pending offer already exists"},
		{usecase.ErrOfferNotPending, fiber.StatusConflict, "Offer is no longer pending"},
		{usecase.ErrOfferExpired, fiber.StatusConflict, "Offer has expired"},
		{usecase.ErrInvalidTransition, fiber.StatusUnprocessableEntity, "Status change not allowed"},
	}
	for _, m := range table {
		if errors.Is(err, m.target) {
			return middleware.NewAppError(m.status, m.message, nil, err)
		}
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
