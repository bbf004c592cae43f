package usecase

import (
	"context"
	"errors"

	"talentbridge/internal/domain/user"
	"talentbridge/internal/pkg/jwt"
	"talentbridge/internal/repository"
	ucauth "talentbridge/internal/usecase/auth"
)

// Session is what register, login and refresh hand back to the client.
type Session struct {
	User         user.User
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (Session, error)
	Login(ctx context.Context, in ucauth.LoginInput) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
}

type Auth struct {
	accounts *ucauth.Service
	users    repository.UserRepository
	tokens   jwt.Service
}

func NewAuthUsecase(users repository.UserRepository, tokens jwt.Service) *Auth {
	return &Auth{accounts: ucauth.NewService(users), users: users, tokens: tokens}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (Session, error) {
	usr, err := u.accounts.Register(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return u.open(usr)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (Session, error) {
	usr, err := u.accounts.Login(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return u.open(usr)
}

// Refresh re-reads the account so the new access token carries the current
// role and email.
func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if refreshToken == "" {
		return Session{}, ErrUnauthorized
	}

	claims, err := u.tokens.ValidateToken(refreshToken)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Session{}, ErrRefreshTokenExpired
	case err != nil, !u.tokens.IsRefreshToken(claims):
		return Session{}, ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return Session{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return Session{}, ErrInternal
	}
	return u.open(usr)
}

func (u *Auth) open(usr user.User) (Session, error) {
	access, err := u.tokens.GenerateAccessToken(usr.ID, usr.Email, string(usr.Role))
	if err != nil {
		return Session{}, ErrInternal
	}
	refresh, err := u.tokens.GenerateRefreshToken(usr.ID)
	if err != nil {
		return Session{}, ErrInternal
	}
	usr.PasswordHash = ""
	return Session{User: usr, AccessToken: access, RefreshToken: refresh}, nil
}
