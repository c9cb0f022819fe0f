package entity

import "strings"

// Role is a free-form access role attached to an identity.
type Role string

const (
	// RoleNone is the zero value; identities start without a role.
	RoleNone Role = ""
	// RoleAdmin grants access to the administrative routes.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// NewRole builds a role from caller input, trimming surrounding whitespace.
func NewRole(name string) Role {
	return Role(strings.TrimSpace(name))
}

// IsValid checks if the Role carries a name.
func (r Role) IsValid() bool {
	return r != RoleNone
}

// ToStrings returns the role as a claim slice; an unset role yields no entries.
func (r Role) ToStrings() []string {
	if !r.IsValid() {
		return nil
	}

	return []string{r.String()}
}
