package repository

import (
	"context"
	"strings"

	"talentbridge/internal/database"
	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	SuggestByPrefix(ctx context.Context, prefix string, limit int) ([]skill.Skill, error)
	EnsureNames(ctx context.Context, names []string) error
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

// SuggestByPrefix expects a normalized prefix.
func (r *PostgresSkillRepository) SuggestByPrefix(ctx context.Context, prefix string, limit int) ([]skill.Skill, error) {
	if limit <= 0 || limit > 10 {
		limit = 10
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, created_at
		 FROM skills
		 WHERE name LIKE $1 || '%'
		 ORDER BY length(name) ASC, name ASC
		 LIMIT $2`,
		escapeLike(prefix), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0, limit)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureNames adds unseen normalized names to the catalog without a category.
func (r *PostgresSkillRepository) EnsureNames(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(names))
	for i := range names {
		ids[i] = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name)
		 SELECT id, name FROM unnest($1::uuid[], $2::text[]) AS t(id, name)
		 ON CONFLICT (name) DO NOTHING`,
		ids, names,
	)
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
