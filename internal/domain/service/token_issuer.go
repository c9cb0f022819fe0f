package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"warden/internal/domain/entity"
)

// TokenIssuer mints session tokens for verified identities.
type TokenIssuer interface {
	// Issue returns an opaque token bound to the identity.
	Issue(identity *entity.Identity) (string, error)
}

// TokenValidator parses tokens minted by a TokenIssuer. Only the HTTP edge needs it.
type TokenValidator interface {
	Validate(token string) (*Claims, error)
}

// Claims represents the JWT claims carried by a session token.
// The subject is the identity ID.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// IdentityID parses the subject claim.
func (c *Claims) IdentityID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}
