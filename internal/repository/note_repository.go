package repository

import (
	"context"
	"fmt"

	"talentbridge/internal/database"
	"talentbridge/internal/database/postgres"
	"talentbridge/internal/domain/note"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, n note.Note) (note.Note, error)
	GetByID(ctx context.Context, id uuid.UUID) (note.Note, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]note.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresNoteRepository struct {
	db database.DB
}

func NewPostgresNoteRepository(db database.DB) *PostgresNoteRepository {
	return &PostgresNoteRepository{db: db}
}

const noteSelect = `SELECT n.id, n.application_id, n.author_id, u.full_name, n.body, n.created_at
	FROM notes n
	JOIN users u ON u.id = n.author_id`

func (r *PostgresNoteRepository) Create(ctx context.Context, n note.Note) (note.Note, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if _, err := r.db.Exec(ctx,
		`INSERT INTO notes (id, application_id, author_id, body) VALUES ($1, $2, $3, $4)`,
		n.ID, n.ApplicationID, n.AuthorID, n.Body,
	); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return note.Note{}, ErrNotFound
		}
		return note.Note{}, fmt.Errorf("create note: %w", err)
	}
	return r.GetByID(ctx, n.ID)
}

func (r *PostgresNoteRepository) GetByID(ctx context.Context, id uuid.UUID) (note.Note, error) {
	return scanNote(r.db.QueryRow(ctx, noteSelect+` WHERE n.id = $1`, id))
}

func (r *PostgresNoteRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]note.Note, error) {
	rows, err := r.db.Query(ctx, noteSelect+` WHERE n.application_id = $1 ORDER BY n.created_at DESC`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]note.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanNote(row database.Row) (note.Note, error) {
	var n note.Note
	if err := row.Scan(&n.ID, &n.ApplicationID, &n.AuthorID, &n.AuthorName, &n.Body, &n.CreatedAt); err != nil {
		if postgres.IsNoRows(err) {
			return note.Note{}, ErrNotFound
		}
		return note.Note{}, err
	}
	return n, nil
}
