package usecase

import (
	"context"
	"math"
	"time"

	"talentbridge/internal/domain/application"
	"talentbridge/internal/domain/matching"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Dashboard struct {
	OpenJobs           int
	ClosedJobs         int
	ApplicantsByStatus map[application.Status]int
	ActiveApplicants   int
	AverageMatchScore  float64
	UpcomingInterviews int
	PendingOffers      int
}

type DashboardUsecase interface {
	Get(ctx context.Context, employerID uuid.UUID) (Dashboard, error)
}

type DashboardService struct {
	repo   repository.DashboardRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardUsecase(repo repository.DashboardRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, logger: orNop(logger), now: time.Now}
}

func (u *DashboardService) Get(ctx context.Context, employerID uuid.UUID) (Dashboard, error) {
	counts, err := u.repo.Counts(ctx, employerID, u.now())
	if err != nil {
		u.logger.Error("[Dashboard] counts failed", zap.Error(err))
		return Dashboard{}, ErrInternal
	}
	byStatus, err := u.repo.ApplicantsByStatus(ctx, employerID)
	if err != nil {
		u.logger.Error("[Dashboard] applicants by status failed", zap.Error(err))
		return Dashboard{}, ErrInternal
	}
	pairs, err := u.repo.ActiveApplicantSkills(ctx, employerID)
	if err != nil {
		u.logger.Error("[Dashboard] applicant skills failed", zap.Error(err))
		return Dashboard{}, ErrInternal
	}

	return Dashboard{
		OpenJobs:           counts.OpenJobs,
		ClosedJobs:         counts.ClosedJobs,
		ApplicantsByStatus: byStatus,
		ActiveApplicants:   len(pairs),
		AverageMatchScore:  averageScore(pairs),
		UpcomingInterviews: counts.UpcomingInterviews,
		PendingOffers:      counts.PendingOffers,
	}, nil
}

// averageScore is rounded to one decimal; no applicants averages to 0.
func averageScore(pairs []repository.SkillPair) float64 {
	if len(pairs) == 0 {
		return 0
	}
	total := 0
	for _, p := range pairs {
		total += matching.Score(p.CandidateSkills, p.RequiredSkills)
	}
	avg := float64(total) / float64(len(pairs))
	return math.Round(avg*10) / 10
}
