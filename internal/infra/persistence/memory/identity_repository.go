// Package memory holds an in-process identity store for local runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"warden/internal/domain/entity"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/domain/repository"
	"warden/internal/errors"

	"github.com/google/uuid"
)

// IdentityRepository keeps identities in a map keyed by email. The write lock
// makes the existence check and the insert one step, which gives the same
// at-most-one-per-email guarantee as the unique index in PostgreSQL.
type IdentityRepository struct {
	mu         sync.RWMutex
	identities map[string]*entity.Identity
	now        func() time.Time
}

// NewIdentityRepository returns an empty store.
func NewIdentityRepository() *IdentityRepository {
	return &IdentityRepository{
		identities: make(map[string]*entity.Identity),
		now:        time.Now,
	}
}

// FindByEmail returns a copy of the stored identity.
func (repo *IdentityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	identity, ok := repo.identities[email]
	if !ok {
		return nil, repository.ErrIdentityNotFound
	}

	return clone(identity), nil
}

// Create stores a copy of the identity and fills in its ID and timestamps.
func (repo *IdentityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.identities[identity.Email]; exists {
		return domainerrors.ErrDuplicateIdentity.WrapMessage("email already exists")
	}

	if identity.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate identity id")
		}
		identity.ID = id
	}
	now := repo.now()
	identity.CreatedAt = now
	identity.UpdatedAt = now

	repo.identities[identity.Email] = clone(identity)

	return nil
}

// UpdateRole sets the role and returns a copy of the updated identity.
func (repo *IdentityRepository) UpdateRole(ctx context.Context, email string, role entity.Role) (*entity.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	identity, ok := repo.identities[email]
	if !ok {
		return nil, repository.ErrIdentityNotFound
	}

	identity.Role = role
	identity.UpdatedAt = repo.now()

	return clone(identity), nil
}

// Len returns the number of stored identities.
func (repo *IdentityRepository) Len() int {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	return len(repo.identities)
}

func clone(identity *entity.Identity) *entity.Identity {
	copied := *identity

	return &copied
}
