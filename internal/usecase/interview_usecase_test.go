package usecase

import (
	"context"
	"testing"
	"time"

	"talentbridge/internal/domain/application"
	"talentbridge/internal/domain/interview"
	"talentbridge/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(offset time.Duration, minutes int) ScheduleInterviewInput {
	return ScheduleInterviewInput{
		ScheduledAt:     testNow.Add(offset),
		DurationMinutes: minutes,
		Mode:            interview.ModeVideo,
		Location:        " https://meet.example/abc ",
	}
}

func TestSchedule_AdvancesApplication(t *testing.T) {
	w := newWorld()
	app := w.apply(application.StatusShortlisted)

	iv, err := w.interviewUsecase().Schedule(context.Background(), w.employer, app.ID, slot(24*time.Hour, 60))
	require.NoError(t, err)
	assert.Equal(t, interview.StatusScheduled, iv.Status)
	assert.Equal(t, "https://meet.example/abc", iv.Location)
	assert.Equal(t, application.StatusInterviewing, w.apps.byID[app.ID].Status)

	assert.Equal(t, []events.Type{events.InterviewScheduled, events.ApplicationStatusChanged}, w.pub.types())
	for _, e := range w.pub.events {
		assert.Equal(t, w.student, e.UserID)
	}
}

func TestSchedule_SecondRoundKeepsStatusQuiet(t *testing.T) {
	w := newWorld()
	app := w.apply(application.StatusInterviewing)

	_, err := w.interviewUsecase().Schedule(context.Background(), w.employer, app.ID, slot(24*time.Hour, 30))
	require.NoError(t, err)
	assert.Equal(t, []events.Type{events.InterviewScheduled}, w.pub.types())
}

func TestSchedule_Validation(t *testing.T) {
	w := newWorld()
	app := w.apply(application.StatusApplied)
	uc := w.interviewUsecase()
	ctx := context.Background()

	cases := map[string]ScheduleInterviewInput{
		"in the past":    slot(-time.Hour, 30),
		"right now":      slot(0, 30),
		"too short":      slot(time.Hour, 10),
		"too long":       slot(time.Hour, 481),
		"unknown mode":   {ScheduledAt: testNow.Add(time.Hour), DurationMinutes: 30, Mode: "carrier pigeon"},
		"zero timestamp": {DurationMinutes: 30, Mode: interview.ModePhone},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Schedule(ctx, w.employer, app.ID, in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSchedule_RejectsClosedPipelineAndStrangers(t *testing.T) {
	w := newWorld()
	uc := w.interviewUsecase()
	ctx := context.Background()

	offered := w.apply(application.StatusOffered)
	_, err := uc.Schedule(ctx, w.employer, offered.ID, slot(time.Hour, 30))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = uc.Schedule(ctx, uuid.New(), offered.ID, slot(time.Hour, 30))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSchedule_OverlapAcrossApplications(t *testing.T) {
	w := newWorld()
	uc := w.interviewUsecase()
	ctx := context.Background()

	first := w.apply(application.StatusApplied)
	other := w.apps.add(application.Application{JobID: w.job.ID, CandidateID: uuid.New()})

	_, err := uc.Schedule(ctx, w.employer, first.ID, slot(2*time.Hour, 60))
	require.NoError(t, err)

	_, err = uc.Schedule(ctx, w.employer, other.ID, slot(2*time.Hour+30*time.Minute, 30))
	assert.ErrorIs(t, err, ErrInterviewOverlap)

	_, err = uc.Schedule(ctx, w.employer, other.ID, slot(3*time.Hour, 30))
	assert.NoError(t, err, "back-to-back slots do not overlap")
}

func TestCancelAndComplete(t *testing.T) {
	w := newWorld()
	uc := w.interviewUsecase()
	ctx := context.Background()
	app := w.apply(application.StatusApplied)

	iv, err := uc.Schedule(ctx, w.employer, app.ID, slot(time.Hour, 45))
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, w.student, iv.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := uc.Cancel(ctx, w.employer, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, interview.StatusCancelled, cancelled.Status)
	assert.Equal(t, events.InterviewCancelled, w.pub.events[len(w.pub.events)-1].Type)

	_, err = uc.Complete(ctx, w.employer, iv.ID)
	assert.ErrorIs(t, err, ErrInterviewNotScheduled)

	_, err = uc.Cancel(ctx, w.employer, uuid.New())
	assert.ErrorIs(t, err, ErrInterviewNotFound)

	// The freed slot can be booked again.
	next, err := uc.Schedule(ctx, w.employer, app.ID, slot(time.Hour, 45))
	require.NoError(t, err)
	done, err := uc.Complete(ctx, w.employer, next.ID)
	require.NoError(t, err)
	assert.Equal(t, interview.StatusCompleted, done.Status)
}

func TestUpcoming_BothSides(t *testing.T) {
	w := newWorld()
	uc := w.interviewUsecase()
	ctx := context.Background()
	app := w.apply(application.StatusApplied)

	_, err := uc.Schedule(ctx, w.employer, app.ID, slot(time.Hour, 30))
	require.NoError(t, err)

	forEmployer, err := uc.Upcoming(ctx, w.employer)
	require.NoError(t, err)
	assert.Len(t, forEmployer, 1)

	forStudent, err := uc.Upcoming(ctx, w.student)
	require.NoError(t, err)
	assert.Len(t, forStudent, 1)

	forStranger, err := uc.Upcoming(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, forStranger)

	list, err := uc.List(ctx, w.student, app.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
