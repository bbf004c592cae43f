package handler

import (
	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/pkg/response"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NoteHandler struct {
	uc usecase.NoteUsecase
}

type noteRequest struct {
	Body string `json:"body"`
}

func NewNoteHandler(uc usecase.NoteUsecase) *NoteHandler {
	return &NoteHandler{uc: uc}
}

func (h *NoteHandler) RegisterRoutes(r fiber.Router, employer fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/applications/:id/notes", employer, h.Add)
	r.Get("/applications/:id/notes", employer, h.List)
	r.Delete("/notes/:id", employer, h.Delete)
}

func (h *NoteHandler) Add(c fiber.Ctx) error {
	employerID, appID, err := userAndParam(c)
	if err != nil {
		return err
	}
	var req noteRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	n, err := h.uc.Add(c.Context(), employerID, appID, req.Body)
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Note added", dto.NewNoteResponse(n))
}

func (h *NoteHandler) List(c fiber.Ctx) error {
	employerID, appID, err := userAndParam(c)
	if err != nil {
		return err
	}
	items, err := h.uc.List(c.Context(), employerID, appID)
	if err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewNoteList(items))
}

func (h *NoteHandler) Delete(c fiber.Ctx) error {
	userID, noteID, err := userAndParam(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), userID, noteID); err != nil {
		return mapHiringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Note deleted", nil)
}
