package handler

import (
	"strings"
	"time"

	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/pkg/response"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type OfferHandler struct {
	uc usecase.OfferUsecase
}

type createOfferRequest struct {
	SalaryAmount int64     `json:"salary_amount"`
	Currency     string    `json:"currency"`
	StartDate    string    `json:"start_date"`
	ExpiresAt    time.Time `json:"expires_at"`
	Notes        string    `json:"notes"`
}

func NewOfferHandler(uc usecase.OfferUsecase) *OfferHandler {
	return &OfferHandler{uc: uc}
}

func (h *OfferHandler) RegisterRoutes(r fiber.Router, authed, employer, student fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/applications/:id/offers", employer, h.Create)
	r.Get("/applications/:id/offers", authed, h.List)
	r.Post("/offers/:id/accept", student, h.Accept)
	r.Post("/offers/:id/decline", student, h.Decline)
	r.Post("/offers/:id/withdraw", employer, h.Withdraw)
}

func (h *OfferHandler) Create(c fiber.Ctx) error {
	employerID, appID, err := userAndParam(c)
	if err != nil {
		return err
	}
	var req createOfferRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	in := usecase.CreateOfferInput{
		SalaryAmount: req.SalaryAmount,
		Currency:     req.Currency,
		ExpiresAt:    req.ExpiresAt,
		Notes:        req.Notes,
	}
	if s := strings.TrimSpace(req.StartDate); s != "" {
		d, err := time.Parse(dto.DateLayout, s)
		if err != nil {
			return badRequest(err)
		}
		in.StartDate = &d
	}

	o, err := h.uc.Create(c.Context(), employerID, appID, in)
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Offer created", dto.NewOfferResponse(o))
}

func (h *OfferHandler) List(c fiber.Ctx) error {
	userID, appID, err := userAndParam(c)
	if err != nil {
		return err
	}
	items, err := h.uc.List(c.Context(), userID, appID)
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOfferList(items))
}

func (h *OfferHandler) Accept(c fiber.Ctx) error {
	studentID, id, err := userAndParam(c)
	if err != nil {
		return err
	}
	o, err := h.uc.Accept(c.Context(), studentID, id)
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Offer accepted", dto.NewOfferResponse(o))
}

func (h *OfferHandler) Decline(c fiber.Ctx) error {
	studentID, id, err := userAndParam(c)
	if err != nil {
		return err
	}
	o, err := h.uc.Decline(c.Context(), studentID, id)
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Offer declined", dto.NewOfferResponse(o))
}

func (h *OfferHandler) Withdraw(c fiber.Ctx) error {
	employerID, id, err := userAndParam(c)
	if err != nil {
		return err
	}
	o, err := h.uc.Withdraw(c.Context(), employerID, id)
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Offer withdrawn", dto.NewOfferResponse(o))
}
