package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/agora/internal/config"
	"github.com/magabrotheeeer/agora/internal/models"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		DialTimeout:  time.Second,
		TimeoutRedis: time.Second,
	}

	cache, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	expected := []*models.Article{
		{ID: 2, Title: "B", Date: "2026-10-18", ChartData: json.RawMessage(`{"x":[1,2]}`)},
		{ID: 1, Title: "A", Date: "2026-10-17"},
	}
	stored, err := cache.SetIfGeneration(ctx, "articles:all", 0, expected, time.Minute)
	require.NoError(t, err)
	require.True(t, stored)

	var actual []*models.Article
	found, err := cache.Get(ctx, "articles:all", &actual)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, actual, 2)
	assert.Equal(t, "B", actual[0].Title)
	assert.JSONEq(t, `{"x":[1,2]}`, string(actual[0].ChartData))
	assert.Nil(t, actual[1].ChartData)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out []*models.Article
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, mr.Set("broken", "{not json"))

	var out []*models.Article
	found, err := cache.Get(context.Background(), "broken", &out)
	require.Error(t, err)
	assert.False(t, found)
	assert.Contains(t, err.Error(), "cache.Get")
}

func TestInvalidate(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	_, err := cache.SetIfGeneration(ctx, "articles:all", 0, []string{"a"}, time.Minute)
	require.NoError(t, err)
	require.True(t, mr.Exists("articles:all"))

	require.NoError(t, cache.Invalidate(ctx, "articles:all"))
	assert.False(t, mr.Exists("articles:all"))

	gen, err := cache.Generation(ctx, "articles:all")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
}

func TestSetIfGeneration_StaleWriterLoses(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	gen, err := cache.Generation(ctx, "articles:all")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	// Между чтением поколения и записью список успел измениться.
	require.NoError(t, cache.Invalidate(ctx, "articles:all"))

	stored, err := cache.SetIfGeneration(ctx, "articles:all", gen, []string{"stale"}, time.Minute)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, mr.Exists("articles:all"))

	gen, err = cache.Generation(ctx, "articles:all")
	require.NoError(t, err)
	stored, err = cache.SetIfGeneration(ctx, "articles:all", gen, []string{"fresh"}, time.Minute)
	require.NoError(t, err)
	assert.True(t, stored)

	var out []string
	found, err := cache.Get(ctx, "articles:all", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"fresh"}, out)
}

func TestGeneration_Corrupted(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, mr.Set("articles:all:gen", "not-a-number"))

	_, err := cache.Generation(context.Background(), "articles:all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.Generation")
}

func TestExpiration(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	_, err := cache.SetIfGeneration(ctx, "articles:all", 0, []string{"a"}, time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	var out []string
	found, err := cache.Get(ctx, "articles:all", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNew_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = New(context.Background(), config.RedisConnection{
		AddressRedis: addr,
		DialTimeout:  100 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.New")
}
