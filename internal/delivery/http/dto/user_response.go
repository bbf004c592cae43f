package dto

import (
	"time"

	"talentbridge/internal/domain/user"
	"talentbridge/internal/usecase"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileResponse struct {
	Headline       string    `json:"headline"`
	University     string    `json:"university"`
	GraduationYear *int      `json:"graduation_year"`
	CompanyName    string    `json:"company_name"`
	Skills         []string  `json:"skills"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type MeResponse struct {
	UserResponse
	Profile ProfileResponse `json:"profile"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func NewAuthResponse(s usecase.Session) AuthResponse {
	return AuthResponse{User: NewUserResponse(s.User), AccessToken: s.AccessToken, RefreshToken: s.RefreshToken}
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

func NewMeResponse(u user.User, p user.Profile) MeResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return MeResponse{
		UserResponse: NewUserResponse(u),
		Profile: ProfileResponse{
			Headline:       p.Headline,
			University:     p.University,
			GraduationYear: p.GraduationYear,
			CompanyName:    p.CompanyName,
			Skills:         skills,
			UpdatedAt:      p.UpdatedAt,
		},
	}
}
