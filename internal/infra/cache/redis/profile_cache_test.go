package redis

import (
	"context"
	"testing"
	"time"

	"warden/internal/domain/entity"
	"warden/internal/domain/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*ProfileCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewProfileCache(client, time.Minute), server
}

func TestProfileCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	profile := &entity.Profile{
		ID:    uuid.New(),
		Email: "a@x.com",
		Name:  "Alice",
		Role:  entity.RoleAdmin,
	}
	require.NoError(t, cache.Set(ctx, profile))

	got, err := cache.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, got.ID)
	assert.Equal(t, entity.RoleAdmin, got.Role)
}

func TestProfileCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, service.ErrCacheMiss)
}

func TestProfileCache_Delete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &entity.Profile{Email: "a@x.com"}))
	require.NoError(t, cache.Delete(ctx, "a@x.com"))

	_, err := cache.Get(ctx, "a@x.com")
	assert.ErrorIs(t, err, service.ErrCacheMiss)
}

func TestProfileCache_Expires(t *testing.T) {
	cache, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &entity.Profile{Email: "a@x.com"}))
	assert.Equal(t, time.Minute, server.TTL(keyPrefix+"a@x.com"))

	server.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, "a@x.com")
	assert.ErrorIs(t, err, service.ErrCacheMiss)
}

func TestProfileCache_StoredValueHasNoSecret(t *testing.T) {
	cache, server := newTestCache(t)

	identity := &entity.Identity{Email: "a@x.com", PasswordHash: "$2a$10$do-not-cache"}
	require.NoError(t, cache.Set(context.Background(), identity.Profile()))

	raw, err := server.Get(keyPrefix + "a@x.com")
	require.NoError(t, err)
	assert.NotContains(t, raw, "do-not-cache")
}

func TestProfileCache_CorruptValue(t *testing.T) {
	cache, server := newTestCache(t)
	require.NoError(t, server.Set(keyPrefix+"a@x.com", "{not json"))

	_, err := cache.Get(context.Background(), "a@x.com")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrCacheMiss)
}

func TestProfileCache_RejectsMissingEmail(t *testing.T) {
	cache, _ := newTestCache(t)

	assert.Error(t, cache.Set(context.Background(), &entity.Profile{}))
	assert.Error(t, cache.Set(context.Background(), nil))
}

func TestProfileCache_ServerDown(t *testing.T) {
	cache, server := newTestCache(t)
	server.Close()

	_, err := cache.Get(context.Background(), "a@x.com")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrCacheMiss)
}

func TestNoopCache(t *testing.T) {
	cache := NewNoopCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &entity.Profile{Email: "a@x.com"}))
	_, err := cache.Get(ctx, "a@x.com")
	assert.ErrorIs(t, err, service.ErrCacheMiss)
	assert.NoError(t, cache.Delete(ctx, "a@x.com"))
}
