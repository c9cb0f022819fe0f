// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"warden/config"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/domain/service"
	"warden/internal/errors"
)

// BcryptHasher implements service.PasswordHasher with bcrypt. The cost is fixed
// when the hasher is built and read concurrently afterwards.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher builds the process hasher from auth.bcryptCost.
func NewBcryptHasher(cfg *config.Config) (service.PasswordHasher, error) {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	return NewBcryptHasherWithCost(cost)
}

// NewBcryptHasherWithCost returns a hasher bound to the given work factor.
func NewBcryptHasherWithCost(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return &BcryptHasher{cost: cost}, nil
}

// Cost returns the work factor used by Hash.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash generates a salted hash with the hasher's cost.
func (h *BcryptHasher) Hash(password string) (string, error) {
	return h.HashWithCost(password, h.cost)
}

// HashWithCost generates a salted hash with an explicit work factor.
// bcrypt draws a fresh salt on every call.
func (h *BcryptHasher) HashWithCost(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domainerrors.ErrPasswordTooLong.WrapMessage("hash password")
		}

		// The bcrypt error never echoes the password.
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(hash), nil
}

// Check compares a plaintext password with a bcrypt hash in constant time.
// Malformed or empty hashes report false.
func (h *BcryptHasher) Check(password, hash string) bool {
	if hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
