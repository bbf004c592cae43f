package handler

import (
	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/domain/matching"
	"talentbridge/internal/pkg/response"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

type calculateRequest struct {
	CandidateSkills matching.SkillList `json:"candidate_skills"`
	RequiredSkills  matching.SkillList `json:"required_skills"`
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/match", h.Calculate)
}

// Calculate rejects only bodies that are not JSON objects; lists of the wrong
// shape score the baseline.
func (h *MatchHandler) Calculate(c fiber.Ctx) error {
	var req calculateRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	b := h.uc.Calculate(req.CandidateSkills, req.RequiredSkills)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(b))
}
