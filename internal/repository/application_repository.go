package repository

import (
	"context"
	"fmt"
	"time"

	"talentbridge/internal/database"
	"talentbridge/internal/database/postgres"
	"talentbridge/internal/domain/application"
	"talentbridge/internal/domain/interview"
	"talentbridge/internal/domain/offer"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) (application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]ApplicantRow, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]TrackerRow, error)
	// UpdateStatus moves the application from one status to another. A move
	// into a terminal status also cancels its scheduled interviews and
	// withdraws its pending offers in the same transaction.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to application.Status) (StatusChange, error)
}

// StatusChange is the result of UpdateStatus, including whatever the move
// settled on the way.
type StatusChange struct {
	Application         application.Application
	CancelledInterviews []interview.Interview
	WithdrawnOffers     []offer.Offer
}

// ApplicantRow is one line of a job's applicant list.
type ApplicantRow struct {
	Application     application.Application
	CandidateName   string
	CandidateEmail  string
	CandidateSkills []string
}

// TrackerRow is one card of a student's application tracker.
type TrackerRow struct {
	Application     application.Application
	JobTitle        string
	CompanyName     string
	JobStatus       string
	RequiredSkills  []string
	CandidateSkills []string
	NextInterviewAt *time.Time
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, candidate_id, status, cover_letter, created_at, updated_at`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	out, err := scanApplication(r.db.QueryRow(ctx,
		`INSERT INTO applications (id, job_id, candidate_id, status, cover_letter)
		 VALUES ($1, $2, $3, 'applied', $4)
		 RETURNING `+applicationColumns,
		a.ID, a.JobID, a.CandidateID, a.CoverLetter,
	))
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return application.Application{}, ErrDuplicate
		}
		return application.Application{}, fmt.Errorf("create application: %w", err)
	}
	return out, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	return scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]ApplicantRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.status, a.cover_letter, a.created_at, a.updated_at,
			u.full_name, u.email, COALESCE(p.skills, '{}')
		 FROM applications a
		 JOIN users u ON u.id = a.candidate_id
		 LEFT JOIN profiles p ON p.user_id = a.candidate_id
		 WHERE a.job_id = $1
		 ORDER BY a.created_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ApplicantRow, 0)
	for rows.Next() {
		var row ApplicantRow
		var status string
		a := &row.Application
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.CandidateID, &status, &a.CoverLetter, &a.CreatedAt, &a.UpdatedAt,
			&row.CandidateName, &row.CandidateEmail, &row.CandidateSkills,
		); err != nil {
			return nil, err
		}
		a.Status = application.Status(status)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]TrackerRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.status, a.cover_letter, a.created_at, a.updated_at,
			j.title, j.company_name, j.status, j.required_skills, COALESCE(p.skills, '{}'),
			(SELECT min(i.scheduled_at) FROM interviews i
			  WHERE i.application_id = a.id AND i.status = 'scheduled' AND i.scheduled_at > now())
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 LEFT JOIN profiles p ON p.user_id = a.candidate_id
		 WHERE a.candidate_id = $1
		 ORDER BY a.updated_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TrackerRow, 0)
	for rows.Next() {
		var row TrackerRow
		var status string
		a := &row.Application
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.CandidateID, &status, &a.CoverLetter, &a.CreatedAt, &a.UpdatedAt,
			&row.JobTitle, &row.CompanyName, &row.JobStatus, &row.RequiredSkills, &row.CandidateSkills,
			&row.NextInterviewAt,
		); err != nil {
			return nil, err
		}
		a.Status = application.Status(status)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves the application only if it is still in from; otherwise
// it returns ErrStaleState (or ErrNotFound when the row is gone).
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to application.Status) (StatusChange, error) {
	var out StatusChange
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		app, err := setApplicationStatus(ctx, tx, id, []application.Status{from}, to)
		if err != nil {
			return err
		}
		out = StatusChange{Application: app}
		if !to.Terminal() {
			return nil
		}
		out.CancelledInterviews, out.WithdrawnOffers, err = settleOpenItems(ctx, tx, id)
		return err
	})
	if err != nil {
		return StatusChange{}, err
	}
	return out, nil
}

// settleOpenItems closes whatever a finished application still holds open:
// scheduled interviews are cancelled and pending offers withdrawn.
func settleOpenItems(ctx context.Context, tx database.Tx, applicationID uuid.UUID) ([]interview.Interview, []offer.Offer, error) {
	rows, err := tx.Query(ctx,
		`UPDATE interviews SET status = 'cancelled', updated_at = now()
		 WHERE application_id = $1 AND status = 'scheduled'
		 RETURNING `+interviewColumns,
		applicationID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("cancel interviews: %w", err)
	}
	ivs, err := collectRows(rows, scanInterview)
	if err != nil {
		return nil, nil, fmt.Errorf("cancel interviews: %w", err)
	}

	rows, err = tx.Query(ctx,
		`UPDATE offers SET status = 'withdrawn', responded_at = now()
		 WHERE application_id = $1 AND status = 'pending'
		 RETURNING `+offerColumns,
		applicationID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("withdraw offers: %w", err)
	}
	offers, err := collectRows(rows, scanOffer)
	if err != nil {
		return nil, nil, fmt.Errorf("withdraw offers: %w", err)
	}
	return ivs, offers, nil
}

func collectRows[T any](rows database.Rows, scan func(database.Row) (T, error)) ([]T, error) {
	defer rows.Close()
	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func setApplicationStatus(ctx context.Context, q database.Querier, id uuid.UUID, from []application.Status, to application.Status) (application.Application, error) {
	allowed := make([]string, len(from))
	for i, s := range from {
		allowed[i] = string(s)
	}
	out, err := scanApplication(q.QueryRow(ctx,
		`UPDATE applications SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = ANY($2)
		 RETURNING `+applicationColumns,
		id, allowed, string(to),
	))
	if err == ErrNotFound {
		var exists bool
		if qerr := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); qerr != nil {
			return application.Application{}, qerr
		}
		if exists {
			return application.Application{}, ErrStaleState
		}
	}
	return out, err
}

// lockApplication reads the application inside tx, holding a row lock.
func lockApplication(ctx context.Context, tx database.Tx, id uuid.UUID) (application.Application, error) {
	return scanApplication(tx.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1 FOR UPDATE`, id))
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	if err := row.Scan(&a.ID, &a.JobID, &a.CandidateID, &status, &a.CoverLetter, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if postgres.IsNoRows(err) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
