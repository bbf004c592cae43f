package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedJob struct {
	Title string `json:"title"`
}

func TestGetJSON_HitAndMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	r := NewFromClient(client, time.Minute, nil)
	ctx := context.Background()

	mock.ExpectGet("jobs:list:a").SetVal(`{"title":"Go Intern"}`)
	var got cachedJob
	ok, err := r.GetJSON(ctx, "jobs:list:a", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Go Intern", got.Title)

	mock.ExpectGet("jobs:list:b").RedisNil()
	ok, err = r.GetJSON(ctx, "jobs:list:b", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetJSON_DefaultTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	r := NewFromClient(client, 90*time.Second, nil)

	mock.ExpectSet("skills:suggest:go", []byte(`{"title":"x"}`), 90*time.Second).SetVal("OK")
	require.NoError(t, r.SetJSON(context.Background(), "skills:suggest:go", cachedJob{Title: "x"}, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetIfNotExists(t *testing.T) {
	client, mock := redismock.NewClientMock()
	r := NewFromClient(client, time.Minute, nil)
	ctx := context.Background()

	mock.ExpectSetNX("jobs:lock:k", "1", 5*time.Second).SetVal(true)
	ok, err := r.SetIfNotExists(ctx, "jobs:lock:k", "1", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectSetNX("jobs:lock:k", "1", defaultLockTTL).SetErr(errors.New("down"))
	ok, err = r.SetIfNotExists(ctx, "jobs:lock:k", "1", 0)
	require.Error(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateNamespaces(t *testing.T) {
	client, mock := redismock.NewClientMock()
	r := NewFromClient(client, time.Minute, nil)

	mock.ExpectScan(0, "jobs:*", 200).SetVal([]string{"jobs:list:1", "jobs:list:2"}, 7)
	mock.ExpectDel("jobs:list:1", "jobs:list:2").SetVal(2)
	mock.ExpectScan(7, "jobs:*", 200).SetVal([]string{}, 0)
	mock.ExpectScan(0, "skills:*", 200).SetVal([]string{}, 0)

	require.NoError(t, r.InvalidateNamespaces(context.Background(), "jobs", " ", "skills"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnavailableBypass(t *testing.T) {
	r := &Redis{}
	ctx := context.Background()

	ok, err := r.GetJSON(ctx, "k", &cachedJob{})
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, r.SetJSON(ctx, "k", 1, 0))
	assert.NoError(t, r.Delete(ctx, "k"))
	assert.NoError(t, r.InvalidateNamespaces(ctx, "jobs"))

	locked, err := r.SetIfNotExists(ctx, "k", "1", 0)
	assert.NoError(t, err)
	assert.False(t, locked)
	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)

	var nilRedis *Redis
	assert.False(t, nilRedis.Available())
}
