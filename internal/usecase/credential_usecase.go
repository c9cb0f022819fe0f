// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"warden/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new identity.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// LoginInput is one credential attempt. It lives only for the duration of the call.
type LoginInput struct {
	Email    string
	Password string
}

// AssignRoleInput names the role to set and the identity that receives it.
type AssignRoleInput struct {
	Role  string
	Email string
}

// --- Output DTOs ---

// LoginOutput carries the session token minted for the verified identity.
type LoginOutput struct {
	Token string
}

// CredentialUsecase defines the credential operations.
// This is the contract that the delivery layer (e.g., API handlers) depends on.
type CredentialUsecase interface {
	// Register creates an identity; an existing email fails with ErrDuplicateIdentity.
	Register(ctx context.Context, input RegisterInput) (*entity.Identity, error)
	// Login verifies a credential attempt and returns a session token.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	// Profile returns the projection for an email; absence fails with ErrProfileNotFound.
	Profile(ctx context.Context, email string) (*entity.Profile, error)
	// AssignRole sets the role of an identity; any store miss or failure is ErrRoleAssignmentFailed.
	AssignRole(ctx context.Context, input AssignRoleInput) (*entity.Identity, error)
}
