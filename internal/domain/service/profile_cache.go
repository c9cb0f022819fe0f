package service

import (
	"context"
	"errors"

	"warden/internal/domain/entity"
)

// ErrCacheMiss is returned by ProfileCache.Get when nothing is cached for the email.
var ErrCacheMiss = errors.New("profile cache miss")

// ProfileCache caches profile projections by email. It only ever stores Profile values,
// so a password hash cannot reach the cache. Callers treat every error as a miss.
type ProfileCache interface {
	Get(ctx context.Context, email string) (*entity.Profile, error)
	Set(ctx context.Context, profile *entity.Profile) error
	Delete(ctx context.Context, email string) error
}
