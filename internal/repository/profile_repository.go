package repository

import (
	"context"

	"talentbridge/internal/database"
	"talentbridge/internal/database/postgres"
	"talentbridge/internal/domain/user"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	Upsert(ctx context.Context, p user.Profile) (user.Profile, error)
	SkillsByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]string, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `user_id, headline, university, graduation_year, company_name, skills, updated_at`

// Get returns an empty profile for users who never saved one.
func (r *PostgresProfileRepository) Get(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
	if err == ErrNotFound {
		return user.Profile{UserID: userID, Skills: []string{}}, nil
	}
	return p, err
}

func (r *PostgresProfileRepository) Upsert(ctx context.Context, p user.Profile) (user.Profile, error) {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return scanProfile(r.db.QueryRow(ctx,
		`INSERT INTO profiles (user_id, headline, university, graduation_year, company_name, skills, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())
		 ON CONFLICT (user_id) DO UPDATE SET
			headline = EXCLUDED.headline,
			university = EXCLUDED.university,
			graduation_year = EXCLUDED.graduation_year,
			company_name = EXCLUDED.company_name,
			skills = EXCLUDED.skills,
			updated_at = now()
		 RETURNING `+profileColumns,
		p.UserID, p.Headline, p.University, p.GraduationYear, p.CompanyName, p.Skills,
	))
}

// SkillsByUserIDs omits users without a profile.
func (r *PostgresProfileRepository) SkillsByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	out := make(map[uuid.UUID][]string, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT user_id, skills FROM profiles WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var skills []string
		if err := rows.Scan(&id, &skills); err != nil {
			return nil, err
		}
		out[id] = skills
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProfile(row database.Row) (user.Profile, error) {
	var p user.Profile
	if err := row.Scan(&p.UserID, &p.Headline, &p.University, &p.GraduationYear, &p.CompanyName, &p.Skills, &p.UpdatedAt); err != nil {
		if postgres.IsNoRows(err) {
			return user.Profile{}, ErrNotFound
		}
		return user.Profile{}, err
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p, nil
}
