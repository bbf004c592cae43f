package handler

import (
	"errors"

	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/pkg/response"
	"talentbridge/internal/usecase"
	useruc "talentbridge/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateMeRequest struct {
	FullName       *string   `json:"full_name"`
	Headline       *string   `json:"headline"`
	University     *string   `json:"university"`
	CompanyName    *string   `json:"company_name"`
	GraduationYear *int      `json:"graduation_year"`
	Skills         *[]string `json:"skills"`
	Password       *string   `json:"password"`
}

func (r updateMeRequest) empty() bool {
	return r.FullName == nil && r.Headline == nil && r.University == nil && r.CompanyName == nil &&
		r.GraduationYear == nil && r.Skills == nil && r.Password == nil
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router, authed fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/users/me", authed, h.GetMe)
	r.Put("/users/me", authed, h.UpdateMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	me, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMeResponse(me.User, me.Profile))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateMeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if req.empty() {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, nil)
	}

	me, err := h.uc.UpdateMe(c.Context(), userID, useruc.UpdateMeInput{
		FullName:       req.FullName,
		Headline:       req.Headline,
		University:     req.University,
		CompanyName:    req.CompanyName,
		GraduationYear: req.GraduationYear,
		Skills:         req.Skills,
		Password:       req.Password,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMeResponse(me.User, me.Profile))
}

func mapUserUsecaseError(err error) error {
	switch {
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, useruc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
