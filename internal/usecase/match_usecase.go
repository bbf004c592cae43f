package usecase

import (
	"context"
	"errors"

	"talentbridge/internal/domain/matching"
	"talentbridge/internal/metrics"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
)

type JobMatch struct {
	JobID     uuid.UUID
	JobTitle  string
	Breakdown matching.Breakdown
}

type MatchUsecase interface {
	MatchJob(ctx context.Context, studentID, jobID uuid.UUID) (JobMatch, error)
	Calculate(candidate, required matching.SkillList) matching.Breakdown
}

type Match struct {
	jobs     repository.JobRepository
	profiles repository.ProfileRepository
	metrics  *metrics.Registry
}

func NewMatchUsecase(jobs repository.JobRepository, profiles repository.ProfileRepository, m *metrics.Registry) *Match {
	return &Match{jobs: jobs, profiles: profiles, metrics: m}
}

// MatchJob scores the student's current profile against a job, open or not.
func (u *Match) MatchJob(ctx context.Context, studentID, jobID uuid.UUID) (JobMatch, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return JobMatch{}, ErrJobNotFound
		}
		return JobMatch{}, ErrInternal
	}
	p, err := u.profiles.Get(ctx, studentID)
	if err != nil {
		return JobMatch{}, ErrInternal
	}

	b := matching.Explain(p.Skills, j.RequiredSkills)
	u.metrics.ObserveMatch("job", b.Score)
	return JobMatch{JobID: j.ID, JobTitle: j.Title, Breakdown: b}, nil
}

// Calculate never fails: lists that did not decode as arrays score the baseline.
func (u *Match) Calculate(candidate, required matching.SkillList) matching.Breakdown {
	var b matching.Breakdown
	if candidate.Valid() && required.Valid() {
		b = matching.Explain(candidate.Items, required.Items)
	} else {
		b = matching.Explain(nil, nil)
	}
	b.Score = matching.ScoreLists(candidate, required)
	b.Badge = matching.BadgeFor(b.Score)
	u.metrics.ObserveMatch("calculator", b.Score)
	return b
}
