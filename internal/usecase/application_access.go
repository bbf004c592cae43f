package usecase

import (
	"context"
	"errors"

	"talentbridge/internal/domain/application"
	"talentbridge/internal/domain/job"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
)

// applicationScope resolves an application with its job and checks which
// side of it the caller is on.
type applicationScope struct {
	apps repository.ApplicationRepository
	jobs repository.JobRepository
}

func (s applicationScope) load(ctx context.Context, appID uuid.UUID) (application.Application, job.Job, error) {
	app, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return application.Application{}, job.Job{}, ErrApplicationNotFound
		}
		return application.Application{}, job.Job{}, ErrInternal
	}
	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return application.Application{}, job.Job{}, ErrApplicationNotFound
		}
		return application.Application{}, job.Job{}, ErrInternal
	}
	return app, j, nil
}

func (s applicationScope) forEmployer(ctx context.Context, employerID, appID uuid.UUID) (application.Application, job.Job, error) {
	app, j, err := s.load(ctx, appID)
	if err != nil {
		return application.Application{}, job.Job{}, err
	}
	if j.EmployerID != employerID {
		return application.Application{}, job.Job{}, ErrForbidden
	}
	return app, j, nil
}

func (s applicationScope) forCandidate(ctx context.Context, candidateID, appID uuid.UUID) (application.Application, job.Job, error) {
	app, j, err := s.load(ctx, appID)
	if err != nil {
		return application.Application{}, job.Job{}, err
	}
	if app.CandidateID != candidateID {
		return application.Application{}, job.Job{}, ErrForbidden
	}
	return app, j, nil
}

// forParticipant admits both the candidate and the job owner and reports
// whether the caller is the employer.
func (s applicationScope) forParticipant(ctx context.Context, userID, appID uuid.UUID) (application.Application, job.Job, bool, error) {
	app, j, err := s.load(ctx, appID)
	if err != nil {
		return application.Application{}, job.Job{}, false, err
	}
	switch userID {
	case j.EmployerID:
		return app, j, true, nil
	case app.CandidateID:
		return app, j, false, nil
	}
	return application.Application{}, job.Job{}, false, ErrForbidden
}

func mapApplicationWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrApplicationNotFound
	case errors.Is(err, repository.ErrStaleState):
		return ErrApplicationChanged
	}
	return ErrInternal
}
