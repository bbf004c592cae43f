package repository

import (
	"context"
	"fmt"
	"time"

	"talentbridge/internal/database"
	"talentbridge/internal/database/postgres"
	"talentbridge/internal/domain/application"
	"talentbridge/internal/domain/offer"

	"github.com/google/uuid"
)

type OfferRepository interface {
	// CreateAndAdvance inserts a pending offer and moves the application to
	// offered. A second pending offer for the application yields ErrDuplicate.
	CreateAndAdvance(ctx context.Context, o offer.Offer) (offer.Offer, application.Application, error)
	// Respond settles a pending offer and the application with it: accepting
	// hires, declining declines.
	Respond(ctx context.Context, id uuid.UUID, accept bool, now time.Time) (offer.Offer, application.Application, error)
	Withdraw(ctx context.Context, id uuid.UUID) (offer.Offer, error)
	GetByID(ctx context.Context, id uuid.UUID) (offer.Offer, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]offer.Offer, error)
}

type PostgresOfferRepository struct {
	db database.DB
}

func NewPostgresOfferRepository(db database.DB) *PostgresOfferRepository {
	return &PostgresOfferRepository{db: db}
}

const offerColumns = `id, application_id, salary_amount, currency, start_date, expires_at, notes, status, created_at, responded_at`

var offerableStatuses = []application.Status{
	application.StatusInterviewing,
	application.StatusOffered,
}

func (r *PostgresOfferRepository) CreateAndAdvance(ctx context.Context, o offer.Offer) (offer.Offer, application.Application, error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}

	var created offer.Offer
	var app application.Application
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		current, err := lockApplication(ctx, tx, o.ApplicationID)
		if err != nil {
			return err
		}
		if !statusIn(current.Status, offerableStatuses) {
			return ErrStaleState
		}

		created, err = scanOffer(tx.QueryRow(ctx,
			`INSERT INTO offers (id, application_id, salary_amount, currency, start_date, expires_at, notes, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
			 RETURNING `+offerColumns,
			o.ID, o.ApplicationID, o.SalaryAmount, o.Currency, o.StartDate, o.ExpiresAt, o.Notes,
		))
		if err != nil {
			if postgres.IsUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("insert offer: %w", err)
		}

		if current.Status == application.StatusOffered {
			app = current
			return nil
		}
		app, err = setApplicationStatus(ctx, tx, current.ID, []application.Status{current.Status}, application.StatusOffered)
		return err
	})
	if err != nil {
		return offer.Offer{}, application.Application{}, err
	}
	return created, app, nil
}

func (r *PostgresOfferRepository) Respond(ctx context.Context, id uuid.UUID, accept bool, now time.Time) (offer.Offer, application.Application, error) {
	offerStatus, appStatus := offer.StatusDeclined, application.StatusDeclined
	if accept {
		offerStatus, appStatus = offer.StatusAccepted, application.StatusHired
	}

	var settled offer.Offer
	var app application.Application
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		current, err := scanOffer(tx.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if current.Status != offer.StatusPending {
			return ErrStaleState
		}
		if current.Expired(now) {
			return ErrExpired
		}

		settled, err = scanOffer(tx.QueryRow(ctx,
			`UPDATE offers SET status = $2, responded_at = $3
			 WHERE id = $1
			 RETURNING `+offerColumns,
			id, string(offerStatus), now,
		))
		if err != nil {
			return err
		}

		app, err = setApplicationStatus(ctx, tx, current.ApplicationID, []application.Status{application.StatusOffered}, appStatus)
		if err != nil {
			return err
		}
		// Hired and declined both end the application.
		_, _, err = settleOpenItems(ctx, tx, current.ApplicationID)
		return err
	})
	if err != nil {
		return offer.Offer{}, application.Application{}, err
	}
	return settled, app, nil
}

// Withdraw leaves the application at offered so a revised offer can follow.
func (r *PostgresOfferRepository) Withdraw(ctx context.Context, id uuid.UUID) (offer.Offer, error) {
	out, err := scanOffer(r.db.QueryRow(ctx,
		`UPDATE offers SET status = 'withdrawn', responded_at = now()
		 WHERE id = $1 AND status = 'pending'
		 RETURNING `+offerColumns,
		id,
	))
	if err == ErrNotFound {
		if _, gerr := r.GetByID(ctx, id); gerr == nil {
			return offer.Offer{}, ErrStaleState
		}
	}
	return out, err
}

func (r *PostgresOfferRepository) GetByID(ctx context.Context, id uuid.UUID) (offer.Offer, error) {
	return scanOffer(r.db.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id))
}

func (r *PostgresOfferRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]offer.Offer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE application_id = $1 ORDER BY created_at DESC`,
		applicationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]offer.Offer, 0)
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanOffer(row database.Row) (offer.Offer, error) {
	var o offer.Offer
	var status string
	if err := row.Scan(
		&o.ID, &o.ApplicationID, &o.SalaryAmount, &o.Currency, &o.StartDate, &o.ExpiresAt,
		&o.Notes, &status, &o.CreatedAt, &o.RespondedAt,
	); err != nil {
		if postgres.IsNoRows(err) {
			return offer.Offer{}, ErrNotFound
		}
		return offer.Offer{}, err
	}
	o.Status = offer.Status(status)
	return o, nil
}
