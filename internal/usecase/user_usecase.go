package usecase

import (
	"context"

	"talentbridge/internal/repository"
	ucuser "talentbridge/internal/usecase/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (ucuser.Me, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (ucuser.Me, error)
}

type User struct {
	svc    *ucuser.Service
	cache  SearchCache
	logger *zap.Logger
}

func NewUserUsecase(users repository.UserRepository, profiles repository.ProfileRepository, skills repository.SkillRepository, cache SearchCache, logger *zap.Logger) *User {
	return &User{svc: ucuser.NewService(users, profiles, skills), cache: cache, logger: orNop(logger)}
}

func (u *User) GetMe(ctx context.Context, userID uuid.UUID) (ucuser.Me, error) {
	return u.svc.GetMe(ctx, userID)
}

func (u *User) UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (ucuser.Me, error) {
	me, catalogChanged, err := u.svc.UpdateMe(ctx, userID, in)
	if err != nil {
		return ucuser.Me{}, err
	}
	if catalogChanged && u.cache != nil {
		if err := u.cache.InvalidateNamespaces(ctx, skillCacheNamespace); err != nil {
			u.logger.Warn("[Skills] cache invalidation failed", zap.Error(err))
		}
	}
	return me, nil
}
