package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"talentbridge/internal/domain/application"
	"talentbridge/internal/domain/offer"
	"talentbridge/internal/events"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxOfferNotes = 2000

type CreateOfferInput struct {
	SalaryAmount int64
	Currency     string
	StartDate    *time.Time
	ExpiresAt    time.Time
	Notes        string
}

type OfferUsecase interface {
	Create(ctx context.Context, employerID, appID uuid.UUID, in CreateOfferInput) (offer.Offer, error)
	Accept(ctx context.Context, candidateID, offerID uuid.UUID) (offer.Offer, error)
	Decline(ctx context.Context, candidateID, offerID uuid.UUID) (offer.Offer, error)
	Withdraw(ctx context.Context, employerID, offerID uuid.UUID) (offer.Offer, error)
	List(ctx context.Context, userID, appID uuid.UUID) ([]offer.Offer, error)
}

type Offer struct {
	scope  applicationScope
	offers repository.OfferRepository
	events events.Publisher
	logger *zap.Logger
	now    func() time.Time
}

func NewOfferUsecase(apps repository.ApplicationRepository, jobs repository.JobRepository, offers repository.OfferRepository, pub events.Publisher, logger *zap.Logger) *Offer {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Offer{
		scope:  applicationScope{apps: apps, jobs: jobs},
		offers: offers,
		events: pub,
		logger: orNop(logger),
		now:    time.Now,
	}
}

func (u *Offer) Create(ctx context.Context, employerID, appID uuid.UUID, in CreateOfferInput) (offer.Offer, error) {
	if in.SalaryAmount <= 0 {
		return offer.Offer{}, ErrInvalidInput
	}
	currency, ok := offer.NormalizeCurrency(in.Currency)
	if !ok {
		return offer.Offer{}, ErrInvalidInput
	}
	if in.ExpiresAt.IsZero() || !in.ExpiresAt.After(u.now()) {
		return offer.Offer{}, ErrInvalidInput
	}
	notes := strings.TrimSpace(in.Notes)
	if utf8.RuneCountInString(notes) > maxOfferNotes {
		return offer.Offer{}, ErrInvalidInput
	}

	app, j, err := u.scope.forEmployer(ctx, employerID, appID)
	if err != nil {
		return offer.Offer{}, err
	}
	if !statusAllows(app.Status, application.StatusInterviewing, application.StatusOffered) {
		return offer.Offer{}, ErrInvalidTransition
	}

	created, updated, err := u.offers.CreateAndAdvance(ctx, offer.Offer{
		ApplicationID: app.ID,
		SalaryAmount:  in.SalaryAmount,
		Currency:      currency,
		StartDate:     in.StartDate,
		ExpiresAt:     in.ExpiresAt.UTC(),
		Notes:         notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return offer.Offer{}, ErrOfferPending
		case errors.Is(err, repository.ErrStaleState):
			return offer.Offer{}, ErrApplicationChanged
		case errors.Is(err, repository.ErrNotFound):
			return offer.Offer{}, ErrApplicationNotFound
		}
		u.logger.Error("[Offers] create failed", zap.String("application_id", appID.String()), zap.Error(err))
		return offer.Offer{}, ErrInternal
	}

	u.events.Publish(ctx, events.New(events.OfferCreated, app.CandidateID, map[string]any{
		"offer_id":       created.ID.String(),
		"application_id": app.ID.String(),
		"job_title":      j.Title,
		"salary_amount":  created.SalaryAmount,
		"currency":       created.Currency,
		"expires_at":     created.ExpiresAt.Format(time.RFC3339),
	}))
	if updated.Status != app.Status {
		publishStatusChange(ctx, u.events, app.CandidateID, updated, app.Status, j)
	}
	return created, nil
}

func (u *Offer) Accept(ctx context.Context, candidateID, offerID uuid.UUID) (offer.Offer, error) {
	return u.respond(ctx, candidateID, offerID, true)
}

func (u *Offer) Decline(ctx context.Context, candidateID, offerID uuid.UUID) (offer.Offer, error) {
	return u.respond(ctx, candidateID, offerID, false)
}

func (u *Offer) respond(ctx context.Context, candidateID, offerID uuid.UUID, accept bool) (offer.Offer, error) {
	o, err := u.get(ctx, offerID)
	if err != nil {
		return offer.Offer{}, err
	}
	_, j, err := u.scope.forCandidate(ctx, candidateID, o.ApplicationID)
	if err != nil {
		return offer.Offer{}, err
	}
	now := u.now()
	if o.Status != offer.StatusPending {
		return offer.Offer{}, ErrOfferNotPending
	}
	if o.Expired(now) {
		return offer.Offer{}, ErrOfferExpired
	}

	settled, app, err := u.offers.Respond(ctx, o.ID, accept, now)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrExpired):
			return offer.Offer{}, ErrOfferExpired
		case errors.Is(err, repository.ErrStaleState):
			return offer.Offer{}, ErrOfferNotPending
		case errors.Is(err, repository.ErrNotFound):
			return offer.Offer{}, ErrOfferNotFound
		}
		return offer.Offer{}, ErrInternal
	}

	u.events.Publish(ctx, events.New(events.OfferResponded, j.EmployerID, map[string]any{
		"offer_id":           settled.ID.String(),
		"application_id":     app.ID.String(),
		"job_title":          j.Title,
		"status":             string(settled.Status),
		"application_status": string(app.Status),
	}))
	return settled, nil
}

func (u *Offer) Withdraw(ctx context.Context, employerID, offerID uuid.UUID) (offer.Offer, error) {
	o, err := u.get(ctx, offerID)
	if err != nil {
		return offer.Offer{}, err
	}
	if _, _, err := u.scope.forEmployer(ctx, employerID, o.ApplicationID); err != nil {
		return offer.Offer{}, err
	}
	if o.Status != offer.StatusPending {
		return offer.Offer{}, ErrOfferNotPending
	}

	out, err := u.offers.Withdraw(ctx, o.ID)
	if err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return offer.Offer{}, ErrOfferNotPending
		}
		return offer.Offer{}, ErrInternal
	}
	return out, nil
}

func (u *Offer) List(ctx context.Context, userID, appID uuid.UUID) ([]offer.Offer, error) {
	if _, _, _, err := u.scope.forParticipant(ctx, userID, appID); err != nil {
		return nil, err
	}
	items, err := u.offers.ListByApplication(ctx, appID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Offer) get(ctx context.Context, id uuid.UUID) (offer.Offer, error) {
	o, err := u.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return offer.Offer{}, ErrOfferNotFound
		}
		return offer.Offer{}, ErrInternal
	}
	return o, nil
}
