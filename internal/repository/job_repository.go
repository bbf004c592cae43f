package repository

import (
	"context"
	"fmt"
	"strings"

	"talentbridge/internal/database"
	"talentbridge/internal/database/postgres"
	"talentbridge/internal/domain/job"

	"github.com/google/uuid"
)

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	Update(ctx context.Context, j job.Job) (job.Job, error)
	Close(ctx context.Context, id uuid.UUID) (job.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]job.Job, error)
	ListOpen(ctx context.Context, f JobListFilter) ([]job.Job, error)
}

// JobListFilter narrows the public board. TitleVariants match title,
// description, company or any required skill; Location and Skill are exact
// filters applied on top.
type JobListFilter struct {
	TitleVariants  []string
	Location       string
	Skill          string
	EmploymentType string
	Limit          int
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, employer_id, title, company_name, location, employment_type, description,
	required_skills, status, created_at, updated_at, closed_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	out, err := scanJob(r.db.QueryRow(ctx,
		`INSERT INTO jobs (id, employer_id, title, company_name, location, employment_type, description, required_skills, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'open')
		 RETURNING `+jobColumns,
		j.ID, j.EmployerID, j.Title, j.CompanyName, j.Location, string(j.EmploymentType), j.Description, j.RequiredSkills,
	))
	if err != nil {
		return job.Job{}, fmt.Errorf("create job: %w", err)
	}
	return out, nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) (job.Job, error) {
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	return scanJob(r.db.QueryRow(ctx,
		`UPDATE jobs SET
			title = $2,
			company_name = $3,
			location = $4,
			employment_type = $5,
			description = $6,
			required_skills = $7,
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+jobColumns,
		j.ID, j.Title, j.CompanyName, j.Location, string(j.EmploymentType), j.Description, j.RequiredSkills,
	))
}

// Close is idempotent; closed_at keeps the first close time.
func (r *PostgresJobRepository) Close(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return scanJob(r.db.QueryRow(ctx,
		`UPDATE jobs SET
			status = 'closed',
			closed_at = COALESCE(closed_at, now()),
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+jobColumns,
		id,
	))
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

func (r *PostgresJobRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE employer_id = $1
		 ORDER BY created_at DESC`,
		employerID,
	)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

// ListOpen returns candidates for ranking, newest first.
func (r *PostgresJobRepository) ListOpen(ctx context.Context, f JobListFilter) ([]job.Job, error) {
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	where := []string{`status = 'open'`}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(f.TitleVariants) > 0 {
		patterns := make([]string, 0, len(f.TitleVariants))
		for _, v := range f.TitleVariants {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			patterns = append(patterns, "%"+escapeLike(v)+"%")
		}
		if len(patterns) > 0 {
			p := arg(patterns)
			where = append(where, `(title ILIKE ANY(`+p+`)
				OR description ILIKE ANY(`+p+`)
				OR company_name ILIKE ANY(`+p+`)
				OR EXISTS (SELECT 1 FROM unnest(required_skills) s WHERE s ILIKE ANY(`+p+`)))`)
		}
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		where = append(where, `location ILIKE `+arg("%"+escapeLike(loc)+"%"))
	}
	if sk := strings.TrimSpace(f.Skill); sk != "" {
		where = append(where, `EXISTS (SELECT 1 FROM unnest(required_skills) s WHERE lower(btrim(s)) = `+arg(strings.ToLower(sk))+`)`)
	}
	if et := strings.TrimSpace(f.EmploymentType); et != "" {
		where = append(where, `employment_type = `+arg(et))
	}

	query := `SELECT ` + jobColumns + `
		FROM jobs
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at DESC
		LIMIT ` + arg(limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func collectJobs(rows database.Rows) ([]job.Job, error) {
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var et, status string
	err := row.Scan(
		&j.ID,
		&j.EmployerID,
		&j.Title,
		&j.CompanyName,
		&j.Location,
		&et,
		&j.Description,
		&j.RequiredSkills,
		&status,
		&j.CreatedAt,
		&j.UpdatedAt,
		&j.ClosedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, err
	}
	j.EmploymentType = job.EmploymentType(et)
	j.Status = job.Status(status)
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	return j, nil
}
