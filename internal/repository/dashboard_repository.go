package repository

import (
	"context"
	"fmt"
	"time"

	"talentbridge/internal/database"
	"talentbridge/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type DashboardCounts struct {
	OpenJobs           int `db:"open_jobs"`
	ClosedJobs         int `db:"closed_jobs"`
	UpcomingInterviews int `db:"upcoming_interviews"`
	PendingOffers      int `db:"pending_offers"`
}

// SkillPair is one active applicant measured against the job applied to.
type SkillPair struct {
	CandidateSkills []string
	RequiredSkills  []string
}

type DashboardRepository interface {
	Counts(ctx context.Context, employerID uuid.UUID, now time.Time) (DashboardCounts, error)
	ApplicantsByStatus(ctx context.Context, employerID uuid.UUID) (map[application.Status]int, error)
	ActiveApplicantSkills(ctx context.Context, employerID uuid.UUID) ([]SkillPair, error)
}

// PostgresDashboardRepository runs scalar reporting queries through sqlx on
// the pool's database/sql handle. Array columns go through the pgx pool,
// which decodes TEXT[] natively.
type PostgresDashboardRepository struct {
	sqlx *sqlx.DB
	db   database.DB
}

func NewPostgresDashboardRepository(db database.DB) *PostgresDashboardRepository {
	var x *sqlx.DB
	if db != nil && db.SQLDB() != nil {
		x = sqlx.NewDb(db.SQLDB(), "pgx")
	}
	return &PostgresDashboardRepository{sqlx: x, db: db}
}

func newDashboardRepository(x *sqlx.DB, db database.DB) *PostgresDashboardRepository {
	return &PostgresDashboardRepository{sqlx: x, db: db}
}

func (r *PostgresDashboardRepository) Counts(ctx context.Context, employerID uuid.UUID, now time.Time) (DashboardCounts, error) {
	if r.sqlx == nil {
		return DashboardCounts{}, database.ErrNilDB
	}

	var out DashboardCounts
	err := r.sqlx.GetContext(ctx, &out,
		`SELECT
			(SELECT count(*) FROM jobs WHERE employer_id = $1 AND status = 'open') AS open_jobs,
			(SELECT count(*) FROM jobs WHERE employer_id = $1 AND status = 'closed') AS closed_jobs,
			(SELECT count(*) FROM interviews
			  WHERE employer_id = $1 AND status = 'scheduled' AND scheduled_at > $2) AS upcoming_interviews,
			(SELECT count(*) FROM offers o
			  JOIN applications a ON a.id = o.application_id
			  JOIN jobs j ON j.id = a.job_id
			  WHERE j.employer_id = $1 AND o.status = 'pending' AND o.expires_at > $2) AS pending_offers`,
		employerID.String(), now,
	)
	if err != nil {
		return DashboardCounts{}, fmt.Errorf("dashboard counts: %w", err)
	}
	return out, nil
}

func (r *PostgresDashboardRepository) ApplicantsByStatus(ctx context.Context, employerID uuid.UUID) (map[application.Status]int, error) {
	if r.sqlx == nil {
		return nil, database.ErrNilDB
	}

	var rows []struct {
		Status string `db:"status"`
		Total  int    `db:"total"`
	}
	err := r.sqlx.SelectContext(ctx, &rows,
		`SELECT a.status, count(*) AS total
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE j.employer_id = $1
		 GROUP BY a.status`,
		employerID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("applicants by status: %w", err)
	}

	out := make(map[application.Status]int, len(application.Statuses))
	for _, s := range application.Statuses {
		out[s] = 0
	}
	for _, row := range rows {
		out[application.Status(row.Status)] = row.Total
	}
	return out, nil
}

func (r *PostgresDashboardRepository) ActiveApplicantSkills(ctx context.Context, employerID uuid.UUID) ([]SkillPair, error) {
	if r.db == nil {
		return nil, database.ErrNilDB
	}

	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(p.skills, '{}'), j.required_skills
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 LEFT JOIN profiles p ON p.user_id = a.candidate_id
		 WHERE j.employer_id = $1
		   AND a.status IN ('applied', 'shortlisted', 'interviewing', 'offered')`,
		employerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SkillPair, 0)
	for rows.Next() {
		var p SkillPair
		if err := rows.Scan(&p.CandidateSkills, &p.RequiredSkills); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
