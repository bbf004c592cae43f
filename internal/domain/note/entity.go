package note

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxBodyLength = 4000

type Note struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	AuthorID      uuid.UUID
	AuthorName    string
	Body          string
	CreatedAt     time.Time
}

// ValidBody expects an already trimmed body; length is counted in runes.
func ValidBody(body string) bool {
	n := utf8.RuneCountInString(body)
	return n >= 1 && n <= MaxBodyLength
}
