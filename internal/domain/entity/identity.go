// Package entity contains the core business objects of warden,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identity is one registered account. It is the only place the password hash lives;
// anything handed to callers goes through Profile.
type Identity struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never serialised, never logged.
	Role         Role      `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the caller-facing projection of an Identity.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanAuthenticate reports whether the record is complete enough to be a login target.
// A record without an email or a hash is treated exactly like a missing one.
func (i *Identity) CanAuthenticate() bool {
	return i != nil && i.Email != "" && i.PasswordHash != ""
}

// HasRole reports whether a role has been assigned.
func (i *Identity) HasRole() bool {
	return i != nil && i.Role != RoleNone
}

// Profile returns the projection of the identity without its secret.
func (i *Identity) Profile() *Profile {
	if i == nil {
		return nil
	}

	return &Profile{
		ID:        i.ID,
		Email:     i.Email,
		Name:      i.Name,
		Role:      i.Role,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// NormalizeEmail trims and lower-cases an email so registration and lookup agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
