package usecase

import (
	"context"

	"talentbridge/internal/domain/matching"
	"talentbridge/internal/metrics"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MaxSkillSuggestions = 10

type SkillItem struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

type SkillUsecase interface {
	Suggest(ctx context.Context, prefix string) ([]SkillItem, error)
}

type Skill struct {
	repo    repository.SkillRepository
	cache   SearchCache
	metrics *metrics.Registry
	logger  *zap.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, cache SearchCache, m *metrics.Registry, logger *zap.Logger) *Skill {
	return &Skill{repo: repo, cache: cache, metrics: m, logger: orNop(logger)}
}

// Suggest matches catalog names case-insensitively by prefix. An empty
// prefix yields no suggestions.
func (u *Skill) Suggest(ctx context.Context, prefix string) ([]SkillItem, error) {
	p := matching.Normalize(prefix)
	if p == "" {
		return []SkillItem{}, nil
	}
	if len(p) > 100 {
		return nil, ErrInvalidInput
	}

	key := SkillSuggestCacheKey(p)
	if u.cache != nil {
		var cached []SkillItem
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			u.metrics.CacheResult(skillCacheNamespace, true)
			return cached, nil
		}
		u.metrics.CacheResult(skillCacheNamespace, false)
	}

	items, err := u.repo.SuggestByPrefix(ctx, p, MaxSkillSuggestions)
	if err != nil {
		u.logger.Error("[Skills] suggest query failed", zap.String("prefix", p), zap.Error(err))
		return nil, ErrInternal
	}

	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, SkillItem{ID: it.ID, Name: it.Name, Category: it.Category})
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, 0); err != nil {
			u.logger.Debug("[Skills] cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}
