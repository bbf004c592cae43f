package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"talentbridge/internal/domain/application"
	"talentbridge/internal/domain/interview"
	"talentbridge/internal/domain/job"
	"talentbridge/internal/domain/matching"
	"talentbridge/internal/domain/note"
	"talentbridge/internal/domain/offer"
	"talentbridge/internal/events"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCoverLetter = 5000

const (
	SortByMatch  = "match"
	SortByRecent = "recent"
)

type ApplicantQuery struct {
	Status   application.Status
	MinScore int
	Sort     string
}

type ApplicantItem struct {
	ApplicationID  uuid.UUID
	CandidateID    uuid.UUID
	CandidateName  string
	CandidateEmail string
	Status         application.Status
	Score          int
	Badge          matching.Badge
	AppliedAt      time.Time
	UpdatedAt      time.Time
}

type TrackerItem struct {
	ApplicationID   uuid.UUID
	JobID           uuid.UUID
	JobTitle        string
	CompanyName     string
	JobOpen         bool
	Status          application.Status
	Score           int
	Badge           matching.Badge
	NextInterviewAt *time.Time
	AppliedAt       time.Time
	UpdatedAt       time.Time
}

type ApplicationDetail struct {
	Application    application.Application
	Job            job.Job
	CandidateName  string
	CandidateEmail string
	Breakdown      matching.Breakdown
	Interviews     []interview.Interview
	Offers         []offer.Offer
	// Notes is nil for the candidate.
	Notes []note.Note
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, candidateID, jobID uuid.UUID, coverLetter string) (application.Application, error)
	ListApplicants(ctx context.Context, employerID, jobID uuid.UUID, q ApplicantQuery) ([]ApplicantItem, error)
	Detail(ctx context.Context, userID, appID uuid.UUID) (ApplicationDetail, error)
	UpdateStatus(ctx context.Context, employerID, appID uuid.UUID, to application.Status) (application.Application, error)
	Withdraw(ctx context.Context, candidateID, appID uuid.UUID) (application.Application, error)
	Tracker(ctx context.Context, candidateID uuid.UUID) ([]TrackerItem, error)
}

type Application struct {
	scope      applicationScope
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	interviews repository.InterviewRepository
	offers     repository.OfferRepository
	notes      repository.NoteRepository
	events     events.Publisher
	logger     *zap.Logger
}

type ApplicationDeps struct {
	Applications repository.ApplicationRepository
	Jobs         repository.JobRepository
	Users        repository.UserRepository
	Profiles     repository.ProfileRepository
	Interviews   repository.InterviewRepository
	Offers       repository.OfferRepository
	Notes        repository.NoteRepository
	Events       events.Publisher
	Logger       *zap.Logger
}

func NewApplicationUsecase(d ApplicationDeps) *Application {
	pub := d.Events
	if pub == nil {
		pub = events.Nop{}
	}
	return &Application{
		scope:      applicationScope{apps: d.Applications, jobs: d.Jobs},
		users:      d.Users,
		profiles:   d.Profiles,
		interviews: d.Interviews,
		offers:     d.Offers,
		notes:      d.Notes,
		events:     pub,
		logger:     orNop(d.Logger),
	}
}

func (u *Application) Apply(ctx context.Context, candidateID, jobID uuid.UUID, coverLetter string) (application.Application, error) {
	coverLetter = strings.TrimSpace(coverLetter)
	if utf8.RuneCountInString(coverLetter) > maxCoverLetter {
		return application.Application{}, ErrInvalidInput
	}

	j, err := u.scope.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}
	if !j.IsOpen() {
		return application.Application{}, ErrJobClosed
	}

	app, err := u.scope.apps.Create(ctx, application.Application{
		JobID:       jobID,
		CandidateID: candidateID,
		CoverLetter: coverLetter,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return application.Application{}, ErrAlreadyApplied
		}
		u.logger.Error("[Applications] create failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return application.Application{}, ErrInternal
	}

	payload := map[string]any{
		"application_id": app.ID.String(),
		"job_id":         j.ID.String(),
		"job_title":      j.Title,
	}
	if p, err := u.profiles.Get(ctx, candidateID); err == nil {
		payload["match_score"] = matching.Score(p.Skills, j.RequiredSkills)
	}
	u.events.Publish(ctx, events.New(events.ApplicationSubmitted, j.EmployerID, payload))
	return app, nil
}

func (u *Application) ListApplicants(ctx context.Context, employerID, jobID uuid.UUID, q ApplicantQuery) ([]ApplicantItem, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, ErrInvalidInput
	}
	if q.MinScore < 0 || q.MinScore > matching.MaxScore {
		return nil, ErrInvalidInput
	}
	switch q.Sort {
	case "":
		q.Sort = SortByMatch
	case SortByMatch, SortByRecent:
	default:
		return nil, ErrInvalidInput
	}

	j, err := u.scope.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}
	if j.EmployerID != employerID {
		return nil, ErrForbidden
	}

	rows, err := u.scope.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]ApplicantItem, 0, len(rows))
	for _, r := range rows {
		if q.Status != "" && r.Application.Status != q.Status {
			continue
		}
		score := matching.Score(r.CandidateSkills, j.RequiredSkills)
		if score < q.MinScore {
			continue
		}
		out = append(out, ApplicantItem{
			ApplicationID:  r.Application.ID,
			CandidateID:    r.Application.CandidateID,
			CandidateName:  r.CandidateName,
			CandidateEmail: r.CandidateEmail,
			Status:         r.Application.Status,
			Score:          score,
			Badge:          matching.BadgeFor(score),
			AppliedAt:      r.Application.CreatedAt,
			UpdatedAt:      r.Application.UpdatedAt,
		})
	}

	sortApplicants(out, q.Sort)
	return out, nil
}

// sortApplicants orders by score then recency for SortByMatch, and by
// recency alone otherwise.
func sortApplicants(items []ApplicantItem, by string) {
	sort.SliceStable(items, func(i, j int) bool {
		if by == SortByMatch && items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].AppliedAt.After(items[j].AppliedAt)
	})
}

func (u *Application) Detail(ctx context.Context, userID, appID uuid.UUID) (ApplicationDetail, error) {
	app, j, isEmployer, err := u.scope.forParticipant(ctx, userID, appID)
	if err != nil {
		return ApplicationDetail{}, err
	}

	candidate, err := u.users.GetByID(ctx, app.CandidateID)
	if err != nil {
		return ApplicationDetail{}, ErrInternal
	}
	p, err := u.profiles.Get(ctx, app.CandidateID)
	if err != nil {
		return ApplicationDetail{}, ErrInternal
	}
	ivs, err := u.interviews.ListByApplication(ctx, app.ID)
	if err != nil {
		return ApplicationDetail{}, ErrInternal
	}
	offers, err := u.offers.ListByApplication(ctx, app.ID)
	if err != nil {
		return ApplicationDetail{}, ErrInternal
	}

	out := ApplicationDetail{
		Application:    app,
		Job:            j,
		CandidateName:  candidate.FullName,
		CandidateEmail: candidate.Email,
		Breakdown:      matching.Explain(p.Skills, j.RequiredSkills),
		Interviews:     ivs,
		Offers:         offers,
	}
	if isEmployer {
		notes, err := u.notes.ListByApplication(ctx, app.ID)
		if err != nil {
			return ApplicationDetail{}, ErrInternal
		}
		out.Notes = notes
	}
	return out, nil
}

func (u *Application) UpdateStatus(ctx context.Context, employerID, appID uuid.UUID, to application.Status) (application.Application, error) {
	if !to.Valid() {
		return application.Application{}, ErrInvalidInput
	}
	if !application.EmployerSettable(to) {
		return application.Application{}, ErrInvalidTransition
	}

	app, j, err := u.scope.forEmployer(ctx, employerID, appID)
	if err != nil {
		return application.Application{}, err
	}
	if !application.CanTransition(app.Status, to) {
		return application.Application{}, ErrInvalidTransition
	}

	change, err := u.scope.apps.UpdateStatus(ctx, app.ID, app.Status, to)
	if err != nil {
		return application.Application{}, mapApplicationWriteError(err)
	}

	publishStatusChange(ctx, u.events, app.CandidateID, change.Application, app.Status, j)
	publishSettled(ctx, u.events, app.CandidateID, change, j)
	return change.Application, nil
}

func (u *Application) Withdraw(ctx context.Context, candidateID, appID uuid.UUID) (application.Application, error) {
	app, j, err := u.scope.forCandidate(ctx, candidateID, appID)
	if err != nil {
		return application.Application{}, err
	}
	if !application.CanTransition(app.Status, application.StatusWithdrawn) {
		return application.Application{}, ErrInvalidTransition
	}

	change, err := u.scope.apps.UpdateStatus(ctx, app.ID, app.Status, application.StatusWithdrawn)
	if err != nil {
		return application.Application{}, mapApplicationWriteError(err)
	}

	publishStatusChange(ctx, u.events, j.EmployerID, change.Application, app.Status, j)
	publishSettled(ctx, u.events, j.EmployerID, change, j)
	return change.Application, nil
}

func (u *Application) Tracker(ctx context.Context, candidateID uuid.UUID) ([]TrackerItem, error) {
	rows, err := u.scope.apps.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]TrackerItem, 0, len(rows))
	for _, r := range rows {
		score := matching.Score(r.CandidateSkills, r.RequiredSkills)
		out = append(out, TrackerItem{
			ApplicationID:   r.Application.ID,
			JobID:           r.Application.JobID,
			JobTitle:        r.JobTitle,
			CompanyName:     r.CompanyName,
			JobOpen:         job.Status(r.JobStatus) == job.StatusOpen,
			Status:          r.Application.Status,
			Score:           score,
			Badge:           matching.BadgeFor(score),
			NextInterviewAt: r.NextInterviewAt,
			AppliedAt:       r.Application.CreatedAt,
			UpdatedAt:       r.Application.UpdatedAt,
		})
	}
	return out, nil
}

func publishStatusChange(ctx context.Context, pub events.Publisher, to uuid.UUID, app application.Application, from application.Status, j job.Job) {
	pub.Publish(ctx, events.New(events.ApplicationStatusChanged, to, map[string]any{
		"application_id": app.ID.String(),
		"job_id":         j.ID.String(),
		"job_title":      j.Title,
		"from":           string(from),
		"to":             string(app.Status),
	}))
}

// publishSettled tells the other party about interviews a terminal move
// cancelled. Withdrawn offers ride on the status change event.
func publishSettled(ctx context.Context, pub events.Publisher, to uuid.UUID, change repository.StatusChange, j job.Job) {
	for _, iv := range change.CancelledInterviews {
		pub.Publish(ctx, events.New(events.InterviewCancelled, to, map[string]any{
			"interview_id":   iv.ID.String(),
			"application_id": change.Application.ID.String(),
			"job_title":      j.Title,
			"scheduled_at":   iv.ScheduledAt.Format(time.RFC3339),
		}))
	}
}
