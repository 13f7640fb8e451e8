package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/backoffice/adapters/cache"
	"finledger/internal/backoffice/config"
)

func mockRedisServer(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := &config.RedisConfig{
		Host:            host,
		Port:            port,
		Password:        "",
		DB:              0,
		ConnectTimeout:  2 * time.Second,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		PoolSize:        5,
		MinIdle:         2,
		IdleTimeout:     30 * time.Second,
		MaxConnLifetime: 5 * time.Minute,
		ReportTTL:       10 * time.Minute,
	}

	return s, cfg
}

func TestNewRedisCache_Success(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)

	require.NoError(t, err)
	require.NotNil(t, redisCache)
	assert.NoError(t, redisCache.Close())
}

func TestNewRedisCache_ConnectionFailure(t *testing.T) {
	ctx := context.Background()

	cfg := &config.RedisConfig{
		Host:           "nonexistent.host",
		Port:           12345,
		ConnectTimeout: 100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg)

	require.Error(t, err)
	assert.Nil(t, redisCache)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisCache_SetAndGet(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer redisCache.Close()

	err = redisCache.Set(ctx, "cashflow:2026-01-01:2026-01-31", `{"balance":100}`, time.Minute)
	require.NoError(t, err)

	value, err := redisCache.Get(ctx, "cashflow:2026-01-01:2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, `{"balance":100}`, value)
}

// Промах кэша не является ошибкой.
func TestRedisCache_GetMiss(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer redisCache.Close()

	value, err := redisCache.Get(ctx, "missing-key")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestRedisCache_SetUsesDefaultTTL(t *testing.T) {
	s, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer redisCache.Close()

	err = redisCache.Set(ctx, "report-key", "payload", 0)
	require.NoError(t, err)

	ttl := s.TTL("report-key")
	assert.Greater(t, ttl.Seconds(), 0.0)
	assert.InDelta(t, cfg.ReportTTL.Seconds(), ttl.Seconds(), 5.0)
}

func TestRedisCache_Delete(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer redisCache.Close()

	require.NoError(t, redisCache.Set(ctx, "stale-key", "payload", time.Minute))
	require.NoError(t, redisCache.Delete(ctx, "stale-key"))

	value, err := redisCache.Get(ctx, "stale-key")
	require.NoError(t, err)
	assert.Empty(t, value)
}
