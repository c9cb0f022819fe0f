// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"warden/internal/domain/entity"
)

// ErrIdentityNotFound is returned when no identity matches the lookup.
var ErrIdentityNotFound = errors.New("identity not found")

// IdentityRepository persists identities. Implementations must hold at most one
// identity per email; Create reports a violation as domainerrors.ErrDuplicateIdentity.
type IdentityRepository interface {
	// FindByEmail retrieves a single identity by its normalised email.
	FindByEmail(ctx context.Context, email string) (*entity.Identity, error)

	// Create persists a new identity and fills in its ID and timestamps.
	Create(ctx context.Context, identity *entity.Identity) error

	// UpdateRole sets the role of the identity with the given email and returns the updated record.
	UpdateRole(ctx context.Context, email string, role entity.Role) (*entity.Identity, error)
}
