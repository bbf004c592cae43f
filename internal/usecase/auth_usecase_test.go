package usecase

import (
	"context"
	"testing"
	"time"

	"talentbridge/internal/domain/user"
	"talentbridge/internal/pkg/jwt"
	ucauth "talentbridge/internal/usecase/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(users *fakeUsers) (*Auth, *jwt.HMACService) {
	svc := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	return NewAuthUsecase(users, svc), svc
}

func TestAuth_RegisterLoginRefresh(t *testing.T) {
	users := newFakeUsers()
	uc, tokens := newAuth(users)
	ctx := context.Background()

	sess, err := uc.Register(ctx, ucauth.RegisterInput{
		Email:    "  Dina@Campus.example ",
		Password: "correct horse",
		FullName: "Dina",
		Role:     user.RoleStudent,
	})
	require.NoError(t, err)
	usr, access, refresh := sess.User, sess.AccessToken, sess.RefreshToken
	assert.Equal(t, "dina@campus.example", usr.Email)
	assert.Empty(t, usr.PasswordHash)

	claims, err := tokens.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, usr.ID, claims.UserID)
	assert.Equal(t, "student", claims.Role)

	_, err = uc.Register(ctx, ucauth.RegisterInput{Email: "dina@campus.example", Password: "another pass", Role: user.RoleStudent})
	assert.ErrorIs(t, err, ucauth.ErrEmailAlreadyRegistered)

	_, err = uc.Login(ctx, ucauth.LoginInput{Email: "dina@campus.example", Password: "wrong horse"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidCredentials)

	_, err = uc.Login(ctx, ucauth.LoginInput{Email: "DINA@campus.example", Password: "correct horse"})
	assert.NoError(t, err)

	renewed, err := uc.Refresh(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, usr.ID, renewed.User.ID)
	assert.NotEmpty(t, renewed.AccessToken)
	assert.NotEmpty(t, renewed.RefreshToken)

	_, err = uc.Refresh(ctx, access)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken, "access tokens cannot refresh")

	_, err = uc.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	delete(users.byID, usr.ID)
	_, err = uc.Refresh(ctx, refresh)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuth_RegisterValidation(t *testing.T) {
	uc, _ := newAuth(newFakeUsers())
	ctx := context.Background()

	for name, in := range map[string]ucauth.RegisterInput{
		"no at sign":     {Email: "dina", Password: "long enough", Role: user.RoleStudent},
		"short password": {Email: "d@x.example", Password: "short", Role: user.RoleStudent},
		"unknown role":   {Email: "d@x.example", Password: "long enough", Role: "admin"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Register(ctx, in)
			assert.ErrorIs(t, err, ucauth.ErrInvalidInput)
		})
	}
}
