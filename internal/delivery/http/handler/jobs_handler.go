package handler

import (
	"errors"
	"time"

	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/domain/job"
	"talentbridge/internal/pkg/response"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	board usecase.JobListUsecase
	jobs  usecase.JobUsecase
	match usecase.MatchUsecase
}

type jobRequest struct {
	Title          string   `json:"title"`
	CompanyName    string   `json:"company_name"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
}

func (r jobRequest) input() usecase.JobInput {
	return usecase.JobInput{
		Title:          r.Title,
		CompanyName:    r.CompanyName,
		Location:       r.Location,
		EmploymentType: job.EmploymentType(r.EmploymentType),
		Description:    r.Description,
		RequiredSkills: r.RequiredSkills,
	}
}

func NewJobsHandler(board usecase.JobListUsecase, jobs usecase.JobUsecase, match usecase.MatchUsecase) *JobsHandler {
	return &JobsHandler{board: board, jobs: jobs, match: match}
}

// RegisterRoutes expects employer and student to already include authentication.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, employer, student fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.HandleListJobs)
	r.Post("/jobs", employer, h.Create)
	r.Get("/jobs/:id", h.Get)
	r.Put("/jobs/:id", employer, h.Update)
	r.Post("/jobs/:id/close", employer, h.Close)
	r.Get("/jobs/:id/match", student, h.Match)
	r.Get("/employer/jobs", employer, h.ListMine)
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return badRequest(err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return badRequest(err)
	}

	page, err := h.board.ListJobs(c.Context(), usecase.JobListParams{
		Query:          c.Query("q"),
		Location:       c.Query("location"),
		Skill:          c.Query("skill"),
		EmploymentType: c.Query("employment_type"),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}

	out := make([]dto.JobListResponse, 0, len(page.Items))
	for _, it := range page.Items {
		posted := ""
		if !it.PostedAt.IsZero() {
			posted = it.PostedAt.UTC().Format(time.RFC3339)
		}
		skills := it.Skills
		if skills == nil {
			skills = []string{}
		}

		out = append(out, dto.JobListResponse{
			JobID:          it.JobID,
			Title:          it.Title,
			CompanyName:    it.CompanyName,
			Location:       it.Location,
			EmploymentType: it.EmploymentType,
			Description:    it.Description,
			Skills:         skills,
			PostedDate:     posted,
		})
	}

	if limit == 0 {
		limit = len(out)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.JobBoardResponse{
		Items:  out,
		Total:  page.Total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	j, err := h.jobs.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	employerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	j, err := h.jobs.Create(c.Context(), employerID, req.input())
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job created", dto.NewJobResponse(j))
}

func (h *JobsHandler) Update(c fiber.Ctx) error {
	employerID, jobID, err := userAndParam(c)
	if err != nil {
		return err
	}
	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	j, err := h.jobs.Update(c.Context(), employerID, jobID, req.input())
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobsHandler) Close(c fiber.Ctx) error {
	employerID, jobID, err := userAndParam(c)
	if err != nil {
		return err
	}
	j, err := h.jobs.Close(c.Context(), employerID, jobID)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job closed", dto.NewJobResponse(j))
}

func (h *JobsHandler) ListMine(c fiber.Ctx) error {
	employerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.jobs.ListMine(c.Context(), employerID)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	out := make([]dto.JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, dto.NewJobResponse(j))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobsHandler) Match(c fiber.Ctx) error {
	studentID, jobID, err := userAndParam(c)
	if err != nil {
		return err
	}
	m, err := h.match.MatchJob(c.Context(), studentID, jobID)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobMatchResponse{
		JobID:         m.JobID,
		JobTitle:      m.JobTitle,
		MatchResponse: dto.NewMatchResponse(m.Breakdown),
	})
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrJobClosed):
		return middleware.NewAppError(fiber.StatusConflict, "Job is closed", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
