package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"talentbridge/internal/domain/job"
	"talentbridge/internal/metrics"
	"talentbridge/internal/repository"
	"talentbridge/internal/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultBoardLimit  = 20
	maxBoardLimit      = 50
	boardCandidates    = 200
	boardLockTTL       = 30 * time.Second
	boardGenerationTTL = 24 * time.Hour
)

// jobGenerationKey lives inside the jobs namespace, so invalidating the
// namespace also retires the generation. Pages stored by a fill that raced an
// invalidation land under the old generation and are never read again.
const jobGenerationKey = jobCacheNamespace + ":gen"

type JobListParams struct {
	Query          string
	Location       string
	Skill          string
	EmploymentType string
	Limit          int
	Offset         int
}

type JobListItem struct {
	JobID          uuid.UUID `json:"job_id"`
	Title          string    `json:"title"`
	CompanyName    string    `json:"company_name"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	Description    string    `json:"description"`
	Skills         []string  `json:"skills"`
	PostedAt       time.Time `json:"posted_at"`
}

type JobListPage struct {
	Items []JobListItem `json:"items"`
	Total int           `json:"total"`
}

type JobListUsecase interface {
	ListJobs(ctx context.Context, params JobListParams) (JobListPage, error)
}

type JobList struct {
	jobs    repository.JobRepository
	cache   SearchCache
	metrics *metrics.Registry
	logger  *zap.Logger

	now  func() time.Time
	wait func(ctx context.Context, d time.Duration) error
}

func NewJobListUsecase(jobs repository.JobRepository, cache SearchCache, m *metrics.Registry, logger *zap.Logger) *JobList {
	return &JobList{jobs: jobs, cache: cache, metrics: m, logger: orNop(logger), now: time.Now, wait: waitFor}
}

func waitFor(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ListJobs serves the public board: open jobs only, ranked by relevance to
// the query, freshness and completeness, then paged.
func (u *JobList) ListJobs(ctx context.Context, params JobListParams) (JobListPage, error) {
	if params.Limit == 0 {
		params.Limit = defaultBoardLimit
	}
	if params.Limit < 0 || params.Limit > maxBoardLimit || params.Offset < 0 {
		return JobListPage{}, ErrInvalidInput
	}
	if et := strings.TrimSpace(params.EmploymentType); et != "" && !job.EmploymentType(et).Valid() {
		return JobListPage{}, ErrInvalidInput
	}

	cacheKey := JobsSearchCacheKey(params, u.generation(ctx))
	lockKey := JobsSearchLockKey(cacheKey)

	if page, ok := u.cached(ctx, cacheKey); ok {
		return page, nil
	}

	lockAcquired := false
	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", boardLockTTL)
		if err == nil && ok {
			lockAcquired = true
			u.logger.Debug("[Jobs] lock acquired", zap.String("key", lockKey))
		} else if err == nil && !ok {
			// Another request is filling this key; give it a moment.
			jitter := time.Duration(u.now().UnixNano()%201) * time.Millisecond
			if err := u.wait(ctx, 300*time.Millisecond+jitter); err != nil {
				return JobListPage{}, err
			}
			if page, ok := u.cached(ctx, cacheKey); ok {
				return page, nil
			}
			u.logger.Debug("[Jobs] lock wait fallback", zap.String("key", lockKey))
		}
	}

	qctx := search.ProcessQuery(params.Query)
	f := repository.JobListFilter{
		TitleVariants:  qctx.Variants,
		Location:       params.Location,
		Skill:          params.Skill,
		EmploymentType: strings.TrimSpace(params.EmploymentType),
		Limit:          boardCandidates,
	}
	rows, err := u.jobs.ListOpen(ctx, f)
	if err != nil {
		u.logger.Error("[Jobs] board query failed", zap.Error(err))
		return JobListPage{}, ErrInternal
	}

	variants := qctx.Variants
	if len(rows) < 5 && qctx.Normalized != "" {
		fb := search.FallbackFirstWord(qctx.Normalized)
		if fb != "" && fb != qctx.Normalized {
			fbCtx := search.ProcessQuery(fb)
			f.TitleVariants = fbCtx.Variants
			if rows2, err2 := u.jobs.ListOpen(ctx, f); err2 == nil && len(rows2) > len(rows) {
				rows = rows2
				variants = fbCtx.Variants
			}
		}
	}

	ranked := rankBoard(rows, variants, u.now())
	page := JobListPage{Items: paginate(ranked, params.Offset, params.Limit), Total: len(ranked)}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, page, 0); err != nil {
			u.logger.Debug("[Jobs] cache set failed", zap.String("key", cacheKey), zap.Error(err))
		}
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
	}
	return page, nil
}

// generation returns the current board generation, minting one when the
// namespace was just invalidated. It returns "" without a cache.
func (u *JobList) generation(ctx context.Context) string {
	if u.cache == nil {
		return ""
	}
	var gen string
	if hit, err := u.cache.GetJSON(ctx, jobGenerationKey, &gen); err == nil && hit {
		return gen
	}
	// Stored JSON-encoded so GetJSON can read it back.
	fresh := strconv.Quote(uuid.NewString())
	if _, err := u.cache.SetIfNotExists(ctx, jobGenerationKey, fresh, boardGenerationTTL); err != nil {
		return ""
	}
	if hit, err := u.cache.GetJSON(ctx, jobGenerationKey, &gen); err == nil && hit {
		return gen
	}
	return ""
}

func (u *JobList) cached(ctx context.Context, key string) (JobListPage, bool) {
	if u.cache == nil {
		return JobListPage{}, false
	}
	var page JobListPage
	hit, err := u.cache.GetJSON(ctx, key, &page)
	if err == nil && hit {
		u.metrics.CacheResult(jobCacheNamespace, true)
		u.logger.Debug("[Jobs] cache hit", zap.String("key", key))
		return page, true
	}
	u.metrics.CacheResult(jobCacheNamespace, false)
	return JobListPage{}, false
}

func rankBoard(rows []job.Job, variants []string, now time.Time) []JobListItem {
	in := make([]search.Job, 0, len(rows))
	for i, r := range rows {
		in = append(in, search.Job{
			OriginalIndex: i,
			ID:            r.ID,
			Title:         r.Title,
			CompanyName:   r.CompanyName,
			Location:      r.Location,
			Description:   r.Description,
			Skills:        r.RequiredSkills,
			CreatedAt:     r.CreatedAt,
		})
	}

	out := make([]JobListItem, 0, len(rows))
	for _, it := range search.RankJobs(in, variants, now) {
		r := rows[it.OriginalIndex]
		out = append(out, JobListItem{
			JobID:          r.ID,
			Title:          r.Title,
			CompanyName:    r.CompanyName,
			Location:       r.Location,
			EmploymentType: string(r.EmploymentType),
			Description:    r.Description,
			Skills:         r.RequiredSkills,
			PostedAt:       r.CreatedAt,
		})
	}
	return out
}

func paginate(items []JobListItem, offset, limit int) []JobListItem {
	if offset >= len(items) {
		return []JobListItem{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
