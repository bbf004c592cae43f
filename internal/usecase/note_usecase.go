package usecase

import (
	"context"
	"errors"
	"strings"

	"talentbridge/internal/domain/note"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
)

type NoteUsecase interface {
	Add(ctx context.Context, employerID, appID uuid.UUID, body string) (note.Note, error)
	List(ctx context.Context, employerID, appID uuid.UUID) ([]note.Note, error)
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
}

type Note struct {
	scope applicationScope
	notes repository.NoteRepository
}

func NewNoteUsecase(apps repository.ApplicationRepository, jobs repository.JobRepository, notes repository.NoteRepository) *Note {
	return &Note{scope: applicationScope{apps: apps, jobs: jobs}, notes: notes}
}

func (u *Note) Add(ctx context.Context, employerID, appID uuid.UUID, body string) (note.Note, error) {
	body = strings.TrimSpace(body)
	if !note.ValidBody(body) {
		return note.Note{}, ErrInvalidInput
	}
	if _, _, err := u.scope.forEmployer(ctx, employerID, appID); err != nil {
		return note.Note{}, err
	}

	n, err := u.notes.Create(ctx, note.Note{ApplicationID: appID, AuthorID: employerID, Body: body})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return note.Note{}, ErrApplicationNotFound
		}
		return note.Note{}, ErrInternal
	}
	return n, nil
}

func (u *Note) List(ctx context.Context, employerID, appID uuid.UUID) ([]note.Note, error) {
	if _, _, err := u.scope.forEmployer(ctx, employerID, appID); err != nil {
		return nil, err
	}
	items, err := u.notes.ListByApplication(ctx, appID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// Delete is allowed for the note's author only.
func (u *Note) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	n, err := u.notes.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoteNotFound
		}
		return ErrInternal
	}
	if n.AuthorID != userID {
		return ErrForbidden
	}
	if err := u.notes.Delete(ctx, noteID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoteNotFound
		}
		return ErrInternal
	}
	return nil
}
