package usecase

import (
	"context"
	"testing"
	"time"

	"talentbridge/internal/domain/application"
	"talentbridge/internal/domain/interview"
	"talentbridge/internal/domain/job"
	"talentbridge/internal/domain/matching"
	"talentbridge/internal/domain/note"
	"talentbridge/internal/domain/offer"
	"talentbridge/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_NotifiesEmployerWithScore(t *testing.T) {
	w := newWorld()
	uc := w.applicationUsecase()

	app, err := uc.Apply(context.Background(), w.student, w.job.ID, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, application.StatusApplied, app.Status)
	assert.Equal(t, "hello", app.CoverLetter)

	require.Len(t, w.pub.events, 1)
	e := w.pub.events[0]
	assert.Equal(t, events.ApplicationSubmitted, e.Type)
	assert.Equal(t, w.employer, e.UserID)
	assert.Equal(t, 77, e.Payload["match_score"])
}

func TestApply_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate", func(t *testing.T) {
		w := newWorld()
		uc := w.applicationUsecase()
		_, err := uc.Apply(ctx, w.student, w.job.ID, "")
		require.NoError(t, err)
		_, err = uc.Apply(ctx, w.student, w.job.ID, "")
		assert.ErrorIs(t, err, ErrAlreadyApplied)
	})

	t.Run("closed job", func(t *testing.T) {
		w := newWorld()
		closed := w.job
		closed.Status = job.StatusClosed
		w.jobs.byID[closed.ID] = closed
		_, err := w.applicationUsecase().Apply(ctx, w.student, w.job.ID, "")
		assert.ErrorIs(t, err, ErrJobClosed)
	})

	t.Run("unknown job", func(t *testing.T) {
		w := newWorld()
		_, err := w.applicationUsecase().Apply(ctx, w.student, uuid.New(), "")
		assert.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run("cover letter too long", func(t *testing.T) {
		w := newWorld()
		long := make([]rune, maxCoverLetter+1)
		for i := range long {
			long[i] = 'x'
		}
		_, err := w.applicationUsecase().Apply(ctx, w.student, w.job.ID, string(long))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestListApplicants_SortAndFilter(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	strong, weak, tieOld, tieNew := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	w.profiles.set(strong, "go", "sql", "docker")
	w.profiles.set(weak)
	w.profiles.set(tieOld, "go")
	w.profiles.set(tieNew, "docker")

	add := func(candidate uuid.UUID, status application.Status, age time.Duration) uuid.UUID {
		return w.apps.add(application.Application{
			JobID: w.job.ID, CandidateID: candidate, Status: status, CreatedAt: testNow.Add(-age),
		}).ID
	}
	strongID := add(strong, application.StatusShortlisted, 4*time.Hour)
	weakID := add(weak, application.StatusApplied, time.Minute)
	oldID := add(tieOld, application.StatusApplied, 3*time.Hour)
	newID := add(tieNew, application.StatusApplied, 2*time.Hour)

	uc := w.applicationUsecase()

	items, err := uc.ListApplicants(ctx, w.employer, w.job.ID, ApplicantQuery{})
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, []uuid.UUID{strongID, newID, oldID, weakID}, applicationIDs(items))
	assert.Equal(t, 100, items[0].Score)
	assert.Equal(t, matching.BadgeStrong, items[0].Badge)
	assert.Equal(t, 43, items[1].Score)

	items, err = uc.ListApplicants(ctx, w.employer, w.job.ID, ApplicantQuery{Sort: SortByRecent})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{weakID, newID, oldID, strongID}, applicationIDs(items))

	items, err = uc.ListApplicants(ctx, w.employer, w.job.ID, ApplicantQuery{MinScore: 40})
	require.NoError(t, err)
	assert.Len(t, items, 3)

	items, err = uc.ListApplicants(ctx, w.employer, w.job.ID, ApplicantQuery{Status: application.StatusShortlisted})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{strongID}, applicationIDs(items))
}

func TestListApplicants_Guards(t *testing.T) {
	w := newWorld()
	uc := w.applicationUsecase()
	ctx := context.Background()

	_, err := uc.ListApplicants(ctx, uuid.New(), w.job.ID, ApplicantQuery{})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.ListApplicants(ctx, w.employer, w.job.ID, ApplicantQuery{Sort: "name"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.ListApplicants(ctx, w.employer, w.job.ID, ApplicantQuery{MinScore: 101})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.ListApplicants(ctx, w.employer, w.job.ID, ApplicantQuery{Status: "ghosted"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("shortlist notifies candidate", func(t *testing.T) {
		w := newWorld()
		app := w.apply(application.StatusApplied)

		got, err := w.applicationUsecase().UpdateStatus(ctx, w.employer, app.ID, application.StatusShortlisted)
		require.NoError(t, err)
		assert.Equal(t, application.StatusShortlisted, got.Status)

		require.Len(t, w.pub.events, 1)
		assert.Equal(t, events.ApplicationStatusChanged, w.pub.events[0].Type)
		assert.Equal(t, w.student, w.pub.events[0].UserID)
		assert.Equal(t, "applied", w.pub.events[0].Payload["from"])
		assert.Equal(t, "shortlisted", w.pub.events[0].Payload["to"])
	})

	t.Run("not employer settable", func(t *testing.T) {
		w := newWorld()
		app := w.apply(application.StatusOffered)
		_, err := w.applicationUsecase().UpdateStatus(ctx, w.employer, app.ID, application.StatusHired)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("backwards move", func(t *testing.T) {
		w := newWorld()
		app := w.apply(application.StatusInterviewing)
		_, err := w.applicationUsecase().UpdateStatus(ctx, w.employer, app.ID, application.StatusShortlisted)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("terminal", func(t *testing.T) {
		w := newWorld()
		app := w.apply(application.StatusRejected)
		_, err := w.applicationUsecase().UpdateStatus(ctx, w.employer, app.ID, application.StatusShortlisted)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("other employer", func(t *testing.T) {
		w := newWorld()
		app := w.apply(application.StatusApplied)
		_, err := w.applicationUsecase().UpdateStatus(ctx, uuid.New(), app.ID, application.StatusRejected)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("concurrent change", func(t *testing.T) {
		w := newWorld()
		app := w.apply(application.StatusApplied)
		w.apps.staleOnUpdate = true
		_, err := w.applicationUsecase().UpdateStatus(ctx, w.employer, app.ID, application.StatusRejected)
		assert.ErrorIs(t, err, ErrApplicationChanged)
		assert.Empty(t, w.pub.events)
	})

	t.Run("unknown status", func(t *testing.T) {
		w := newWorld()
		app := w.apply(application.StatusApplied)
		_, err := w.applicationUsecase().UpdateStatus(ctx, w.employer, app.ID, "archived")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	w := newWorld()
	uc := w.applicationUsecase()
	app := w.apply(application.StatusInterviewing)

	_, err := uc.Withdraw(ctx, uuid.New(), app.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := uc.Withdraw(ctx, w.student, app.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusWithdrawn, got.Status)
	require.Len(t, w.pub.events, 1)
	assert.Equal(t, w.employer, w.pub.events[0].UserID)

	_, err = uc.Withdraw(ctx, w.student, app.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// interviewingWithOffer builds an application holding one scheduled
// interview and one pending offer.
func interviewingWithOffer(t *testing.T, w *world) (application.Application, interview.Interview, offer.Offer) {
	t.Helper()
	ctx := context.Background()
	app := w.apply(application.StatusShortlisted)

	iv, err := w.interviewUsecase().Schedule(ctx, w.employer, app.ID, slot(48*time.Hour, 60))
	require.NoError(t, err)
	o, err := w.offerUsecase().Create(ctx, w.employer, app.ID, offerInput())
	require.NoError(t, err)

	w.pub.events = nil
	return w.apps.byID[app.ID], iv, o
}

func TestTerminalMoveSettlesOpenItems(t *testing.T) {
	ctx := context.Background()

	t.Run("reject", func(t *testing.T) {
		w := newWorld()
		app, iv, o := interviewingWithOffer(t, w)

		_, err := w.applicationUsecase().UpdateStatus(ctx, w.employer, app.ID, application.StatusRejected)
		require.NoError(t, err)

		assert.Equal(t, interview.StatusCancelled, w.interviews.byID[iv.ID].Status)
		assert.Equal(t, offer.StatusWithdrawn, w.offers.byID[o.ID].Status)
		assert.Equal(t, []events.Type{events.ApplicationStatusChanged, events.InterviewCancelled}, w.pub.types())
		for _, e := range w.pub.events {
			assert.Equal(t, w.student, e.UserID)
		}
		assert.Equal(t, iv.ID.String(), w.pub.events[1].Payload["interview_id"])
	})

	t.Run("withdraw", func(t *testing.T) {
		w := newWorld()
		app, iv, o := interviewingWithOffer(t, w)

		_, err := w.applicationUsecase().Withdraw(ctx, w.student, app.ID)
		require.NoError(t, err)

		assert.Equal(t, interview.StatusCancelled, w.interviews.byID[iv.ID].Status)
		assert.Equal(t, offer.StatusWithdrawn, w.offers.byID[o.ID].Status)
		assert.Equal(t, []events.Type{events.ApplicationStatusChanged, events.InterviewCancelled}, w.pub.types())
		for _, e := range w.pub.events {
			assert.Equal(t, w.employer, e.UserID)
		}

		// The freed slot no longer blocks the employer's calendar.
		other := w.apps.add(application.Application{JobID: w.job.ID, CandidateID: uuid.New()})
		_, err = w.interviewUsecase().Schedule(ctx, w.employer, other.ID, slot(48*time.Hour, 60))
		assert.NoError(t, err)
	})
}

func TestDetail_NotesOnlyForEmployer(t *testing.T) {
	ctx := context.Background()
	w := newWorld()
	uc := w.applicationUsecase()
	app := w.apply(application.StatusApplied)
	_, _ = w.notes.Create(ctx, note.Note{ApplicationID: app.ID, AuthorID: w.employer, Body: "strong SQL"})

	forEmployer, err := uc.Detail(ctx, w.employer, app.ID)
	require.NoError(t, err)
	assert.Len(t, forEmployer.Notes, 1)
	assert.Equal(t, "Sam Student", forEmployer.CandidateName)
	assert.Equal(t, []string{"go", "sql"}, forEmployer.Breakdown.Matched)
	assert.Equal(t, []string{"docker"}, forEmployer.Breakdown.Missing)
	assert.Equal(t, 77, forEmployer.Breakdown.Score)

	forStudent, err := uc.Detail(ctx, w.student, app.ID)
	require.NoError(t, err)
	assert.Nil(t, forStudent.Notes)

	_, err = uc.Detail(ctx, uuid.New(), app.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.Detail(ctx, w.student, uuid.New())
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestTracker(t *testing.T) {
	w := newWorld()
	app := w.apply(application.StatusShortlisted)

	items, err := w.applicationUsecase().Tracker(context.Background(), w.student)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, app.ID, items[0].ApplicationID)
	assert.Equal(t, "Backend Intern", items[0].JobTitle)
	assert.True(t, items[0].JobOpen)
	assert.Equal(t, 77, items[0].Score)
	assert.Equal(t, matching.BadgeGood, items[0].Badge)
}

func applicationIDs(items []ApplicantItem) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		out = append(out, it.ApplicationID)
	}
	return out
}
