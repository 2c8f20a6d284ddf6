package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_GetHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheWithClient(client, time.Hour)

	mock.ExpectGet("payoff:avalanche:abc").SetVal(`{"totalMonths":12}`)

	val, ok := cache.Get(context.Background(), "payoff:avalanche:abc")
	assert.True(t, ok)
	assert.Equal(t, `{"totalMonths":12}`, val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheWithClient(client, time.Hour)

	mock.ExpectGet("missing").RedisNil()

	val, ok := cache.Get(context.Background(), "missing")
	assert.False(t, ok)
	assert.Empty(t, val)
}

func TestRedisCache_GetErrorIsMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheWithClient(client, time.Hour)

	mock.ExpectGet("key").SetErr(errors.New("connection refused"))

	_, ok := cache.Get(context.Background(), "key")
	assert.False(t, ok)
}

func TestRedisCache_SetUsesTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheWithClient(client, 30*time.Minute)

	mock.ExpectSet("key", "value", 30*time.Minute).SetVal("OK")

	require.NoError(t, cache.Set(context.Background(), "key", "value"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_SetError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheWithClient(client, 0)

	mock.ExpectSet("key", "value", 0).SetErr(errors.New("READONLY"))

	assert.Error(t, cache.Set(context.Background(), "key", "value"))
}

func TestRedisCache_Ping(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheWithClient(client, 0)

	mock.ExpectPing().SetVal("PONG")
	require.NoError(t, cache.Ping(context.Background()))

	mock.ExpectPing().SetErr(errors.New("timeout"))
	err := cache.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestRedisCache_MiniredisExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewRedisCache(RedisOptions{Addr: mr.Addr(), TTL: time.Minute})
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Ping(ctx))
	require.NoError(t, cache.Set(ctx, "payoff:snowball:1f", `{"totalMonths":7}`))

	val, ok := cache.Get(ctx, "payoff:snowball:1f")
	assert.True(t, ok)
	assert.Equal(t, `{"totalMonths":7}`, val)
	assert.Equal(t, time.Minute, mr.TTL("payoff:snowball:1f"))

	mr.FastForward(2 * time.Minute)
	_, ok = cache.Get(ctx, "payoff:snowball:1f")
	assert.False(t, ok)
}
