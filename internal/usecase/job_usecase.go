package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"talentbridge/internal/domain/job"
	"talentbridge/internal/domain/matching"
	"talentbridge/internal/domain/user"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxTextLength     = 200
	maxJobDescription = 10000
)

type JobInput struct {
	Title          string
	CompanyName    string
	Location       string
	EmploymentType job.EmploymentType
	Description    string
	RequiredSkills []string
}

type JobUsecase interface {
	Create(ctx context.Context, employerID uuid.UUID, in JobInput) (job.Job, error)
	Update(ctx context.Context, employerID, jobID uuid.UUID, in JobInput) (job.Job, error)
	Close(ctx context.Context, employerID, jobID uuid.UUID) (job.Job, error)
	Get(ctx context.Context, jobID uuid.UUID) (job.Job, error)
	ListMine(ctx context.Context, employerID uuid.UUID) ([]job.Job, error)
}

type Job struct {
	jobs     repository.JobRepository
	profiles repository.ProfileRepository
	skills   repository.SkillRepository
	cache    SearchCache
	logger   *zap.Logger
}

func NewJobUsecase(jobs repository.JobRepository, profiles repository.ProfileRepository, skills repository.SkillRepository, cache SearchCache, logger *zap.Logger) *Job {
	return &Job{jobs: jobs, profiles: profiles, skills: skills, cache: cache, logger: orNop(logger)}
}

func (u *Job) Create(ctx context.Context, employerID uuid.UUID, in JobInput) (job.Job, error) {
	j, err := u.validate(in)
	if err != nil {
		return job.Job{}, err
	}
	if j.CompanyName == "" {
		p, err := u.profiles.Get(ctx, employerID)
		if err != nil {
			return job.Job{}, ErrInternal
		}
		j.CompanyName = p.CompanyName
	}
	j.EmployerID = employerID

	created, err := u.jobs.Create(ctx, j)
	if err != nil {
		u.logger.Error("[Jobs] create failed", zap.String("employer_id", employerID.String()), zap.Error(err))
		return job.Job{}, ErrInternal
	}
	u.afterWrite(ctx, created)
	return created, nil
}

func (u *Job) Update(ctx context.Context, employerID, jobID uuid.UUID, in JobInput) (job.Job, error) {
	current, err := u.owned(ctx, employerID, jobID)
	if err != nil {
		return job.Job{}, err
	}
	if !current.IsOpen() {
		return job.Job{}, ErrJobClosed
	}

	j, err := u.validate(in)
	if err != nil {
		return job.Job{}, err
	}
	if j.CompanyName == "" {
		j.CompanyName = current.CompanyName
	}
	j.ID = current.ID
	j.EmployerID = current.EmployerID

	updated, err := u.jobs.Update(ctx, j)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	u.afterWrite(ctx, updated)
	return updated, nil
}

// Close is idempotent for the owner.
func (u *Job) Close(ctx context.Context, employerID, jobID uuid.UUID) (job.Job, error) {
	current, err := u.owned(ctx, employerID, jobID)
	if err != nil {
		return job.Job{}, err
	}
	if !current.IsOpen() {
		return current, nil
	}

	closed, err := u.jobs.Close(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	u.invalidateBoard(ctx)
	return closed, nil
}

func (u *Job) Get(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (u *Job) ListMine(ctx context.Context, employerID uuid.UUID) ([]job.Job, error) {
	items, err := u.jobs.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Job) owned(ctx context.Context, employerID, jobID uuid.UUID) (job.Job, error) {
	j, err := u.Get(ctx, jobID)
	if err != nil {
		return job.Job{}, err
	}
	if j.EmployerID != employerID {
		return job.Job{}, ErrForbidden
	}
	return j, nil
}

func (u *Job) validate(in JobInput) (job.Job, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || utf8.RuneCountInString(title) > maxTextLength {
		return job.Job{}, ErrInvalidInput
	}
	company := strings.TrimSpace(in.CompanyName)
	location := strings.TrimSpace(in.Location)
	if utf8.RuneCountInString(company) > maxTextLength || utf8.RuneCountInString(location) > maxTextLength {
		return job.Job{}, ErrInvalidInput
	}
	desc := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(desc) > maxJobDescription {
		return job.Job{}, ErrInvalidInput
	}

	et := in.EmploymentType
	if et == "" {
		et = job.FullTime
	}
	if !et.Valid() {
		return job.Job{}, ErrInvalidInput
	}

	skills, ok := user.CleanSkills(in.RequiredSkills, user.MaxProfileSkills)
	if !ok {
		return job.Job{}, ErrInvalidInput
	}

	return job.Job{
		Title:          title,
		CompanyName:    company,
		Location:       location,
		EmploymentType: et,
		Description:    desc,
		RequiredSkills: skills,
	}, nil
}

func (u *Job) afterWrite(ctx context.Context, j job.Job) {
	if u.skills != nil && len(j.RequiredSkills) > 0 {
		if err := u.skills.EnsureNames(ctx, matching.Distinct(j.RequiredSkills)); err != nil {
			u.logger.Warn("[Jobs] skill catalog update failed", zap.Error(err))
		} else if u.cache != nil {
			_ = u.cache.InvalidateNamespaces(ctx, skillCacheNamespace)
		}
	}
	u.invalidateBoard(ctx)
}

func (u *Job) invalidateBoard(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateNamespaces(ctx, jobCacheNamespace); err != nil {
		u.logger.Warn("[Jobs] board cache invalidation failed", zap.Error(err))
	}
}
