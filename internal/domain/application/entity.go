package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusApplied      Status = "applied"
	StatusShortlisted  Status = "shortlisted"
	StatusInterviewing Status = "interviewing"
	StatusOffered      Status = "offered"
	StatusHired        Status = "hired"
	StatusDeclined     Status = "declined"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
)

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	CandidateID uuid.UUID
	Status      Status
	CoverLetter string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
