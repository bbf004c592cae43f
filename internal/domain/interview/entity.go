package interview

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 480
)

type Mode string

const (
	ModeOnsite Mode = "onsite"
	ModeVideo  Mode = "video"
	ModePhone  Mode = "phone"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeOnsite, ModeVideo, ModePhone:
		return true
	}
	return false
}

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type Interview struct {
	ID              uuid.UUID
	ApplicationID   uuid.UUID
	EmployerID      uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int
	Mode            Mode
	Location        string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (i Interview) EndsAt() time.Time {
	return i.ScheduledAt.Add(time.Duration(i.DurationMinutes) * time.Minute)
}

// Overlaps treats intervals as half-open, so back-to-back slots do not clash.
func (i Interview) Overlaps(start, end time.Time) bool {
	return i.ScheduledAt.Before(end) && start.Before(i.EndsAt())
}

func ValidDuration(minutes int) bool {
	return minutes >= MinDurationMinutes && minutes <= MaxDurationMinutes
}
