package user

import (
	"context"
	"errors"
	"strings"

	"talentbridge/internal/domain/matching"
	"talentbridge/internal/domain/user"
	"talentbridge/internal/repository"
	ucauth "talentbridge/internal/usecase/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrInternal     = errors.New("internal error")
)

const (
	minGraduationYear = 1950
	maxGraduationYear = 2100
	maxTextField      = 200
)

type Me struct {
	User    user.User
	Profile user.Profile
}

// UpdateMeInput fields left nil are kept. GraduationYear 0 clears the year.
type UpdateMeInput struct {
	FullName       *string
	Headline       *string
	University     *string
	CompanyName    *string
	GraduationYear *int
	Skills         *[]string
	Password       *string
}

// SkillCatalog learns skill names users type so suggestions can offer them.
type SkillCatalog interface {
	EnsureNames(ctx context.Context, names []string) error
}

type Service struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	catalog  SkillCatalog
}

func NewService(users repository.UserRepository, profiles repository.ProfileRepository, catalog SkillCatalog) *Service {
	return &Service{users: users, profiles: profiles, catalog: catalog}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (Me, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Me{}, ErrNotFound
		}
		return Me{}, ErrInternal
	}
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return Me{}, ErrInternal
	}
	return Me{User: ucauth.Sanitize(usr), Profile: p}, nil
}

// UpdateMe reports whether new skill names reached the catalog.
func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateMeInput) (Me, bool, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Me{}, false, ErrNotFound
		}
		return Me{}, false, ErrInternal
	}
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return Me{}, false, ErrInternal
	}

	userDirty := false
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" || len(name) > maxTextField {
			return Me{}, false, ErrInvalidInput
		}
		usr.FullName = name
		userDirty = true
	}
	if in.Password != nil {
		if !ucauth.IsValidPassword(*in.Password) {
			return Me{}, false, ErrInvalidInput
		}
		hash, err := ucauth.HashPassword(*in.Password, 0)
		if err != nil {
			return Me{}, false, ErrInternal
		}
		usr.PasswordHash = hash
		userDirty = true
	}

	text := func(dst *string, v *string) bool {
		if v == nil {
			return true
		}
		t := strings.TrimSpace(*v)
		if len(t) > maxTextField {
			return false
		}
		*dst = t
		return true
	}
	if !text(&p.Headline, in.Headline) || !text(&p.University, in.University) || !text(&p.CompanyName, in.CompanyName) {
		return Me{}, false, ErrInvalidInput
	}

	if in.GraduationYear != nil {
		y := *in.GraduationYear
		switch {
		case y == 0:
			p.GraduationYear = nil
		case y < minGraduationYear || y > maxGraduationYear:
			return Me{}, false, ErrInvalidInput
		default:
			p.GraduationYear = &y
		}
	}

	var learned []string
	if in.Skills != nil {
		if usr.Role != user.RoleStudent && len(*in.Skills) > 0 {
			return Me{}, false, ErrInvalidInput
		}
		cleaned, ok := user.CleanSkills(*in.Skills, user.MaxProfileSkills)
		if !ok {
			return Me{}, false, ErrInvalidInput
		}
		p.Skills = cleaned
		learned = matching.Distinct(cleaned)
	}

	if userDirty {
		if usr, err = s.users.Update(ctx, usr); err != nil {
			return Me{}, false, ErrInternal
		}
	}
	p.UserID = userID
	saved, err := s.profiles.Upsert(ctx, p)
	if err != nil {
		return Me{}, false, ErrInternal
	}

	catalogChanged := false
	if s.catalog != nil && len(learned) > 0 {
		// Best effort: a catalog miss never fails the profile save.
		if err := s.catalog.EnsureNames(ctx, learned); err == nil {
			catalogChanged = true
		}
	}

	return Me{User: ucauth.Sanitize(usr), Profile: saved}, catalogChanged, nil
}
