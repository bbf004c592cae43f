package usecase

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	ErrJobNotFound = errors.New("job not found")
	ErrJobClosed   = errors.New("job is closed")

	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrApplicationChanged  = errors.New("application was updated by someone else")

	ErrInterviewNotFound     = errors.New("interview not found")
	ErrInterviewOverlap      = errors.New("interview overlaps another scheduled interview")
	ErrInterviewNotScheduled = errors.New("interview is no longer scheduled")

	ErrOfferNotFound   = errors.New("offer not found")
	ErrOfferPending    = errors.New("application already has a pending offer")
	ErrOfferNotPending = errors.New("offer is no longer pending")
	ErrOfferExpired    = errors.New("offer has expired")

	ErrNoteNotFound = errors.New("note not found")
)
