package auth

import (
	"strings"
	"testing"
	"time"

	"warden/config"
	"warden/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuerConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenTTL: time.Minute},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTIssuer_IssueAndValidate(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestIssuerConfig())
	require.NoError(t, err)

	identity := &entity.Identity{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: "$2a$04$hash-that-must-not-leak",
		Role:         entity.RoleAdmin,
	}

	token, err := issuer.Issue(identity)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	identityID, err := claims.IdentityID()
	require.NoError(t, err)
	assert.Equal(t, identity.ID, identityID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, []string{"admin"}, claims.Roles)
	assert.Equal(t, identity.ID.String(), claims.Subject)
}

func TestJWTIssuer_TokenNeverCarriesHash(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestIssuerConfig())
	require.NoError(t, err)

	token, err := issuer.Issue(&entity.Identity{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: "$2a$04$hash-that-must-not-leak",
	})
	require.NoError(t, err)

	payload := strings.Split(token, ".")[1]
	decoded, err := jwt.NewParser().DecodeSegment(payload)
	require.NoError(t, err)
	assert.NotContains(t, string(decoded), "hash-that-must-not-leak")
	assert.NotContains(t, string(decoded), "roles", "unassigned role yields no roles claim")
}

func TestJWTIssuer_InvalidToken(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestIssuerConfig())
	require.NoError(t, err)

	claims, err := issuer.Validate("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestIssuerConfig())
	require.NoError(t, err)

	otherCfg := newTestIssuerConfig()
	otherCfg.SecretKey.Access = "another_secret_key_that_is_also_long"
	other, err := NewJWTIssuer(otherCfg)
	require.NoError(t, err)

	token, err := other.Issue(&entity.Identity{ID: uuid.New(), Email: "a@x.com"})
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.Error(t, err)
}

func TestJWTIssuer_ExpiredToken(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestIssuerConfig())
	require.NoError(t, err)

	issuedAt := time.Now().Add(-time.Hour)
	issuer.now = func() time.Time { return issuedAt }
	token, err := issuer.Issue(&entity.Identity{ID: uuid.New(), Email: "a@x.com"})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Validate(token)
	assert.Error(t, err)
}

func TestJWTIssuer_NilIdentity(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestIssuerConfig())
	require.NoError(t, err)

	_, err = issuer.Issue(nil)
	assert.Error(t, err)
}

func TestJWTIssuer_EmptySecret(t *testing.T) {
	issuer, err := NewJWTIssuer(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, issuer)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTIssuer_DefaultTTL(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "secret"

	issuer, err := NewJWTIssuer(cfg)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, issuer.TTL())
}
