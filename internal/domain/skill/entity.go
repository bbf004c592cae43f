package skill

import (
	"time"

	"github.com/google/uuid"
)

// Skill is a catalog entry. Name is stored normalized.
type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
}
