package auth

import (
	"strings"
	"sync"
	"testing"

	"warden/config"
	domainerrors "warden/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()

	hasher, err := NewBcryptHasherWithCost(bcrypt.MinCost)
	require.NoError(t, err)

	return hasher
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := newTestHasher(t)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, hasher.Check("secret1", hash))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := newTestHasher(t)

	first, err := hasher.Hash("secret1")
	require.NoError(t, err)
	second, err := hasher.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("secret1", first))
	assert.True(t, hasher.Check("secret1", second))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newTestHasher(t)

	hash, err := hasher.Hash("StrongPass123!")
	require.NoError(t, err)

	assert.True(t, hasher.Check("StrongPass123!", hash))
	assert.False(t, hasher.Check("WrongPassword123!", hash))
	assert.False(t, hasher.Check("", hash))
}

func TestBcryptHasher_CheckMalformedHash(t *testing.T) {
	hasher := newTestHasher(t)

	malformed := []string{
		"",
		"invalid_hash",
		"$2a$",
		"$2a$04$tooshort",
		"secret1",
	}

	for _, hash := range malformed {
		assert.NotPanics(t, func() {
			assert.False(t, hasher.Check("secret1", hash), "hash %q must not verify", hash)
		})
	}
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6
	hasher, err := NewBcryptHasherWithCost(customCost)
	require.NoError(t, err)
	assert.Equal(t, customCost, hasher.Cost())

	hash, err := hasher.Hash("StrongPass123!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_HashWithCost(t *testing.T) {
	hasher := newTestHasher(t)

	hash, err := hasher.HashWithCost("secret1", 5)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
	assert.True(t, hasher.Check("secret1", hash))
}

func TestBcryptHasher_RejectsOutOfRangeCost(t *testing.T) {
	_, err := NewBcryptHasherWithCost(bcrypt.MinCost - 1)
	assert.Error(t, err)

	_, err = NewBcryptHasherWithCost(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	hasher := newTestHasher(t)

	_, err := hasher.Hash(strings.Repeat("a", 73))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordTooLong))
	assert.NotContains(t, err.Error(), strings.Repeat("a", 73))
}

func TestNewBcryptHasher_UsesConfiguredCost(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 5}}

	hasher, err := NewBcryptHasher(cfg)
	require.NoError(t, err)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestNewBcryptHasher_DefaultsWithoutAuthConfig(t *testing.T) {
	hasher, err := NewBcryptHasher(&config.Config{})
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, hasher.(*BcryptHasher).Cost())
}

func TestBcryptHasher_ConcurrentUse(t *testing.T) {
	hasher := newTestHasher(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			hash, err := hasher.Hash("secret1")
			assert.NoError(t, err)
			assert.True(t, hasher.Check("secret1", hash))
		}()
	}
	wg.Wait()
}
