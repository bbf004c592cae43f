package repository

import (
	"context"
	"fmt"
	"time"

	"talentbridge/internal/database"
	"talentbridge/internal/database/postgres"
	"talentbridge/internal/domain/application"
	"talentbridge/internal/domain/interview"

	"github.com/google/uuid"
)

type InterviewRepository interface {
	// CreateAndAdvance inserts a scheduled interview and moves the application
	// to interviewing in one transaction. It returns ErrOverlap when the
	// employer already has a scheduled interview in that window and
	// ErrStaleState when the application left a schedulable status.
	CreateAndAdvance(ctx context.Context, iv interview.Interview) (interview.Interview, application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (interview.Interview, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]interview.Interview, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to interview.Status) (interview.Interview, error)
	ListUpcomingForUser(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]UpcomingInterview, error)
}

type UpcomingInterview struct {
	Interview     interview.Interview
	JobID         uuid.UUID
	JobTitle      string
	CompanyName   string
	CandidateID   uuid.UUID
	CandidateName string
}

type PostgresInterviewRepository struct {
	db database.DB
}

func NewPostgresInterviewRepository(db database.DB) *PostgresInterviewRepository {
	return &PostgresInterviewRepository{db: db}
}

const interviewColumns = `id, application_id, employer_id, scheduled_at, duration_minutes, mode, location, status, created_at, updated_at`

var schedulableStatuses = []application.Status{
	application.StatusApplied,
	application.StatusShortlisted,
	application.StatusInterviewing,
}

func (r *PostgresInterviewRepository) CreateAndAdvance(ctx context.Context, iv interview.Interview) (interview.Interview, application.Application, error) {
	if iv.ID == uuid.Nil {
		iv.ID = uuid.New()
	}

	var created interview.Interview
	var app application.Application
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		// Serializes scheduling per employer so the overlap check below is race free.
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, iv.EmployerID.String()); err != nil {
			return fmt.Errorf("lock employer calendar: %w", err)
		}

		current, err := lockApplication(ctx, tx, iv.ApplicationID)
		if err != nil {
			return err
		}
		if !statusIn(current.Status, schedulableStatuses) {
			return ErrStaleState
		}

		var clash bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT 1 FROM interviews
				WHERE employer_id = $1
				  AND status = 'scheduled'
				  AND scheduled_at < $3
				  AND scheduled_at + make_interval(mins => duration_minutes) > $2
			)`,
			iv.EmployerID, iv.ScheduledAt, iv.EndsAt(),
		).Scan(&clash); err != nil {
			return err
		}
		if clash {
			return ErrOverlap
		}

		created, err = scanInterview(tx.QueryRow(ctx,
			`INSERT INTO interviews (id, application_id, employer_id, scheduled_at, duration_minutes, mode, location, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, 'scheduled')
			 RETURNING `+interviewColumns,
			iv.ID, iv.ApplicationID, iv.EmployerID, iv.ScheduledAt, iv.DurationMinutes, string(iv.Mode), iv.Location,
		))
		if err != nil {
			return fmt.Errorf("insert interview: %w", err)
		}

		if current.Status == application.StatusInterviewing {
			app = current
			return nil
		}
		app, err = setApplicationStatus(ctx, tx, current.ID, []application.Status{current.Status}, application.StatusInterviewing)
		return err
	})
	if err != nil {
		return interview.Interview{}, application.Application{}, err
	}
	return created, app, nil
}

func (r *PostgresInterviewRepository) GetByID(ctx context.Context, id uuid.UUID) (interview.Interview, error) {
	return scanInterview(r.db.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id))
}

func (r *PostgresInterviewRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]interview.Interview, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE application_id = $1 ORDER BY scheduled_at ASC`,
		applicationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]interview.Interview, 0)
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresInterviewRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to interview.Status) (interview.Interview, error) {
	out, err := scanInterview(r.db.QueryRow(ctx,
		`UPDATE interviews SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2
		 RETURNING `+interviewColumns,
		id, string(from), string(to),
	))
	if err == ErrNotFound {
		if _, gerr := r.GetByID(ctx, id); gerr == nil {
			return interview.Interview{}, ErrStaleState
		}
	}
	return out, err
}

// ListUpcomingForUser covers both sides: interviews the user runs as an
// employer and interviews on the user's own applications.
func (r *PostgresInterviewRepository) ListUpcomingForUser(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]UpcomingInterview, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT i.id, i.application_id, i.employer_id, i.scheduled_at, i.duration_minutes, i.mode, i.location,
			i.status, i.created_at, i.updated_at,
			j.id, j.title, j.company_name, u.id, u.full_name
		 FROM interviews i
		 JOIN applications a ON a.id = i.application_id
		 JOIN jobs j ON j.id = a.job_id
		 JOIN users u ON u.id = a.candidate_id
		 WHERE (i.employer_id = $1 OR a.candidate_id = $1)
		   AND i.status = 'scheduled'
		   AND i.scheduled_at > $2
		 ORDER BY i.scheduled_at ASC
		 LIMIT $3`,
		userID, now, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UpcomingInterview, 0)
	for rows.Next() {
		var u UpcomingInterview
		var mode, status string
		iv := &u.Interview
		if err := rows.Scan(
			&iv.ID, &iv.ApplicationID, &iv.EmployerID, &iv.ScheduledAt, &iv.DurationMinutes, &mode, &iv.Location,
			&status, &iv.CreatedAt, &iv.UpdatedAt,
			&u.JobID, &u.JobTitle, &u.CompanyName, &u.CandidateID, &u.CandidateName,
		); err != nil {
			return nil, err
		}
		iv.Mode = interview.Mode(mode)
		iv.Status = interview.Status(status)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanInterview(row database.Row) (interview.Interview, error) {
	var iv interview.Interview
	var mode, status string
	if err := row.Scan(
		&iv.ID, &iv.ApplicationID, &iv.EmployerID, &iv.ScheduledAt, &iv.DurationMinutes,
		&mode, &iv.Location, &status, &iv.CreatedAt, &iv.UpdatedAt,
	); err != nil {
		if postgres.IsNoRows(err) {
			return interview.Interview{}, ErrNotFound
		}
		return interview.Interview{}, err
	}
	iv.Mode = interview.Mode(mode)
	iv.Status = interview.Status(status)
	return iv, nil
}

func statusIn(s application.Status, set []application.Status) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
