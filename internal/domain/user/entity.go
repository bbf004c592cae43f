package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent  Role = "student"
	RoleEmployer Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleEmployer
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Profile struct {
	UserID         uuid.UUID
	Headline       string
	University     string
	GraduationYear *int
	CompanyName    string
	Skills         []string
	UpdatedAt      time.Time
}
