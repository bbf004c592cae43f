package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	ApplicationSubmitted     Type = "application_submitted"
	ApplicationStatusChanged Type = "application_status_changed"
	InterviewScheduled       Type = "interview_scheduled"
	InterviewCancelled       Type = "interview_cancelled"
	OfferCreated             Type = "offer_created"
	OfferResponded           Type = "offer_responded"
)

// Event is addressed to exactly one user.
type Event struct {
	ID         uuid.UUID      `json:"id"`
	Type       Type           `json:"type"`
	UserID     uuid.UUID      `json:"user_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

func New(t Type, userID uuid.UUID, payload map[string]any) Event {
	if payload == nil {
		payload = map[string]any{}
	}
	return Event{
		ID:         uuid.New(),
		Type:       t,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher must not block the caller or report delivery failures.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
