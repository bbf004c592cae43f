package job

import (
	"time"

	"github.com/google/uuid"
)

type EmploymentType string

const (
	FullTime   EmploymentType = "full_time"
	PartTime   EmploymentType = "part_time"
	Internship EmploymentType = "internship"
	Contract   EmploymentType = "contract"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case FullTime, PartTime, Internship, Contract:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

type Job struct {
	ID             uuid.UUID
	EmployerID     uuid.UUID
	Title          string
	CompanyName    string
	Location       string
	EmploymentType EmploymentType
	Description    string
	RequiredSkills []string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ClosedAt       *time.Time
}

func (j Job) IsOpen() bool {
	return j.Status == StatusOpen
}
