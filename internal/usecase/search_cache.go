package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SearchCache is the slice of the Redis cache the read paths use. Misses and
// an unavailable backend both read as (false, nil).
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	InvalidateNamespaces(ctx context.Context, namespaces ...string) error
}

const (
	jobCacheNamespace   = "jobs"
	skillCacheNamespace = "skills"
)

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
