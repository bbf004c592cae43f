package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"talentbridge/internal/domain/application"
	"talentbridge/internal/domain/interview"
	"talentbridge/internal/events"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUpcomingInterviews = 50

type ScheduleInterviewInput struct {
	ScheduledAt     time.Time
	DurationMinutes int
	Mode            interview.Mode
	Location        string
}

type InterviewUsecase interface {
	Schedule(ctx context.Context, employerID, appID uuid.UUID, in ScheduleInterviewInput) (interview.Interview, error)
	List(ctx context.Context, userID, appID uuid.UUID) ([]interview.Interview, error)
	Cancel(ctx context.Context, employerID, interviewID uuid.UUID) (interview.Interview, error)
	Complete(ctx context.Context, employerID, interviewID uuid.UUID) (interview.Interview, error)
	Upcoming(ctx context.Context, userID uuid.UUID) ([]repository.UpcomingInterview, error)
}

type Interview struct {
	scope      applicationScope
	interviews repository.InterviewRepository
	events     events.Publisher
	logger     *zap.Logger
	now        func() time.Time
}

func NewInterviewUsecase(apps repository.ApplicationRepository, jobs repository.JobRepository, interviews repository.InterviewRepository, pub events.Publisher, logger *zap.Logger) *Interview {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Interview{
		scope:      applicationScope{apps: apps, jobs: jobs},
		interviews: interviews,
		events:     pub,
		logger:     orNop(logger),
		now:        time.Now,
	}
}

func (u *Interview) Schedule(ctx context.Context, employerID, appID uuid.UUID, in ScheduleInterviewInput) (interview.Interview, error) {
	if in.ScheduledAt.IsZero() || !in.ScheduledAt.After(u.now()) {
		return interview.Interview{}, ErrInvalidInput
	}
	if !interview.ValidDuration(in.DurationMinutes) || !in.Mode.Valid() {
		return interview.Interview{}, ErrInvalidInput
	}
	location := strings.TrimSpace(in.Location)
	if utf8.RuneCountInString(location) > 500 {
		return interview.Interview{}, ErrInvalidInput
	}

	app, j, err := u.scope.forEmployer(ctx, employerID, appID)
	if err != nil {
		return interview.Interview{}, err
	}
	if !statusAllows(app.Status, application.StatusApplied, application.StatusShortlisted, application.StatusInterviewing) {
		return interview.Interview{}, ErrInvalidTransition
	}

	created, updated, err := u.interviews.CreateAndAdvance(ctx, interview.Interview{
		ApplicationID:   app.ID,
		EmployerID:      employerID,
		ScheduledAt:     in.ScheduledAt.UTC(),
		DurationMinutes: in.DurationMinutes,
		Mode:            in.Mode,
		Location:        location,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOverlap):
			return interview.Interview{}, ErrInterviewOverlap
		case errors.Is(err, repository.ErrStaleState):
			return interview.Interview{}, ErrApplicationChanged
		case errors.Is(err, repository.ErrNotFound):
			return interview.Interview{}, ErrApplicationNotFound
		}
		u.logger.Error("[Interviews] schedule failed", zap.String("application_id", appID.String()), zap.Error(err))
		return interview.Interview{}, ErrInternal
	}

	u.events.Publish(ctx, events.New(events.InterviewScheduled, app.CandidateID, map[string]any{
		"interview_id":     created.ID.String(),
		"application_id":   app.ID.String(),
		"job_title":        j.Title,
		"scheduled_at":     created.ScheduledAt.Format(time.RFC3339),
		"duration_minutes": created.DurationMinutes,
		"mode":             string(created.Mode),
		"location":         created.Location,
	}))
	if updated.Status != app.Status {
		publishStatusChange(ctx, u.events, app.CandidateID, updated, app.Status, j)
	}
	return created, nil
}

func (u *Interview) List(ctx context.Context, userID, appID uuid.UUID) ([]interview.Interview, error) {
	if _, _, _, err := u.scope.forParticipant(ctx, userID, appID); err != nil {
		return nil, err
	}
	items, err := u.interviews.ListByApplication(ctx, appID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Interview) Cancel(ctx context.Context, employerID, interviewID uuid.UUID) (interview.Interview, error) {
	iv, err := u.settle(ctx, employerID, interviewID, interview.StatusCancelled)
	if err != nil {
		return interview.Interview{}, err
	}

	if app, j, err := u.scope.load(ctx, iv.ApplicationID); err == nil {
		u.events.Publish(ctx, events.New(events.InterviewCancelled, app.CandidateID, map[string]any{
			"interview_id":   iv.ID.String(),
			"application_id": app.ID.String(),
			"job_title":      j.Title,
			"scheduled_at":   iv.ScheduledAt.Format(time.RFC3339),
		}))
	}
	return iv, nil
}

func (u *Interview) Complete(ctx context.Context, employerID, interviewID uuid.UUID) (interview.Interview, error) {
	return u.settle(ctx, employerID, interviewID, interview.StatusCompleted)
}

func (u *Interview) settle(ctx context.Context, employerID, interviewID uuid.UUID, to interview.Status) (interview.Interview, error) {
	iv, err := u.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return interview.Interview{}, ErrInterviewNotFound
		}
		return interview.Interview{}, ErrInternal
	}
	if _, _, err := u.scope.forEmployer(ctx, employerID, iv.ApplicationID); err != nil {
		return interview.Interview{}, err
	}
	if iv.Status != interview.StatusScheduled {
		return interview.Interview{}, ErrInterviewNotScheduled
	}

	out, err := u.interviews.UpdateStatus(ctx, iv.ID, interview.StatusScheduled, to)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStaleState):
			return interview.Interview{}, ErrInterviewNotScheduled
		case errors.Is(err, repository.ErrNotFound):
			return interview.Interview{}, ErrInterviewNotFound
		}
		return interview.Interview{}, ErrInternal
	}
	return out, nil
}

func (u *Interview) Upcoming(ctx context.Context, userID uuid.UUID) ([]repository.UpcomingInterview, error) {
	items, err := u.interviews.ListUpcomingForUser(ctx, userID, u.now(), maxUpcomingInterviews)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func statusAllows(s application.Status, allowed ...application.Status) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
