package offer

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusWithdrawn Status = "withdrawn"
)

type Offer struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	SalaryAmount  int64
	Currency      string
	StartDate     *time.Time
	ExpiresAt     time.Time
	Notes         string
	Status        Status
	CreatedAt     time.Time
	RespondedAt   *time.Time
}

func (o Offer) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

// NormalizeCurrency upper-cases code and reports whether it is three letters.
func NormalizeCurrency(code string) (string, bool) {
	c := strings.ToUpper(strings.TrimSpace(code))
	return c, currencyRe.MatchString(c)
}
