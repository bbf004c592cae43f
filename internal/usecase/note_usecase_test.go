package usecase

import (
	"context"
	"strings"
	"testing"

	"talentbridge/internal/domain/application"
	"talentbridge/internal/domain/note"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotes(t *testing.T) {
	w := newWorld()
	app := w.apply(application.StatusApplied)
	uc := NewNoteUsecase(w.apps, w.jobs, w.notes)
	ctx := context.Background()

	n, err := uc.Add(ctx, w.employer, app.ID, "  solid portfolio  ")
	require.NoError(t, err)
	assert.Equal(t, "solid portfolio", n.Body)
	assert.Equal(t, w.employer, n.AuthorID)

	for _, body := range []string{"", "   ", strings.Repeat("é", note.MaxBodyLength+1)} {
		_, err := uc.Add(ctx, w.employer, app.ID, body)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	_, err = uc.Add(ctx, w.employer, app.ID, strings.Repeat("é", note.MaxBodyLength))
	assert.NoError(t, err)

	_, err = uc.Add(ctx, w.student, app.ID, "self review")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = uc.List(ctx, w.student, app.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	items, err := uc.List(ctx, w.employer, app.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	assert.ErrorIs(t, uc.Delete(ctx, w.student, n.ID), ErrForbidden)
	assert.NoError(t, uc.Delete(ctx, w.employer, n.ID))
	assert.ErrorIs(t, uc.Delete(ctx, w.employer, n.ID), ErrNoteNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, w.employer, uuid.New()), ErrNoteNotFound)
}
