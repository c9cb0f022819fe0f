// Package service defines the interfaces for domain services.
package service

// PasswordHasher defines the interface for hashing and verifying passwords.
// This abstracts the specific hashing algorithm (e.g., bcrypt) from the business logic.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password using the hasher's fixed cost.
	Hash(password string) (string, error)
	// Check compares a plaintext password with a hash. Malformed hashes never match.
	Check(password, hash string) bool
}
