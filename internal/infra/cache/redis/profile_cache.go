// Package redis implements the profile cache on top of go-redis.
package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"warden/config"
	"warden/internal/domain/entity"
	"warden/internal/domain/service"
	"warden/internal/errors"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	keyPrefix   = "warden:profile:"
	pingTimeout = 2 * time.Second
)

// ProfileCache stores profile projections as JSON values with a fixed TTL.
type ProfileCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewProfileCache wraps an existing client.
func NewProfileCache(client goredis.UniversalClient, ttl time.Duration) *ProfileCache {
	return &ProfileCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *ProfileCache) key(email string) string {
	return keyPrefix + email
}

// Get returns the cached profile or service.ErrCacheMiss.
func (c *ProfileCache) Get(ctx context.Context, email string) (*entity.Profile, error) {
	val, err := c.client.Get(ctx, c.key(email)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, service.ErrCacheMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get profile")
	}

	var profile entity.Profile
	if err := json.Unmarshal(val, &profile); err != nil {
		return nil, errors.Wrap(err, "decode cached profile")
	}

	return &profile, nil
}

// Set caches the profile under its email.
func (c *ProfileCache) Set(ctx context.Context, profile *entity.Profile) error {
	if profile == nil || profile.Email == "" {
		return errors.New("profile cache: missing email")
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return errors.Wrap(err, "encode profile")
	}

	return errors.WithStack(c.client.Set(ctx, c.key(profile.Email), data, c.ttl).Err())
}

// Delete drops the cached profile for the email.
func (c *ProfileCache) Delete(ctx context.Context, email string) error {
	return errors.WithStack(c.client.Del(ctx, c.key(email)).Err())
}

// noopCache is used when redis is disabled; every read misses.
type noopCache struct{}

func (noopCache) Get(context.Context, string) (*entity.Profile, error) {
	return nil, service.ErrCacheMiss
}

func (noopCache) Set(context.Context, *entity.Profile) error {
	return nil
}

func (noopCache) Delete(context.Context, string) error {
	return nil
}

// NewNoopCache returns a cache that stores nothing.
func NewNoopCache() service.ProfileCache {
	return noopCache{}
}

// Params holds dependencies for the profile cache, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// New returns a redis-backed cache when redis.enabled is set, otherwise a noop cache.
func New(params Params) (service.ProfileCache, error) {
	cfg := params.Config.Redis
	if cfg == nil || !cfg.Enabled {
		params.Logger.Info("Redis not configured, profile cache disabled")

		return NewNoopCache(), nil
	}
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required when redis is enabled")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, pingTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping redis")
			}
			params.Logger.Info("Redis profile cache ready", slog.String("addr", cfg.Addr))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return NewProfileCache(client, cfg.ProfileTTL), nil
}
