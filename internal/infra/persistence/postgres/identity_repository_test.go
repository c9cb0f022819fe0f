package postgres

import (
	"testing"
	"time"

	"warden/internal/domain/entity"
	"warden/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityMappers_RoundTripRole(t *testing.T) {
	now := time.Now()
	role := "admin"
	identityM := &model.IdentityModel{
		ID:           uuid.New(),
		Email:        "a@x.com",
		Name:         "Alice",
		PasswordHash: "$2a$10$hash",
		Role:         &role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	identity := toIdentityDomain(identityM)
	require.NotNil(t, identity)
	assert.Equal(t, entity.RoleAdmin, identity.Role)
	assert.Equal(t, "$2a$10$hash", identity.PasswordHash)

	back := fromIdentityDomain(identity)
	require.NotNil(t, back.Role)
	assert.Equal(t, "admin", *back.Role)
	assert.Equal(t, identityM.Email, back.Email)
}

func TestIdentityMappers_UnsetRoleStaysNull(t *testing.T) {
	identityM := fromIdentityDomain(&entity.Identity{Email: "a@x.com", PasswordHash: "hash"})
	assert.Nil(t, identityM.Role)

	identity := toIdentityDomain(&model.IdentityModel{Email: "a@x.com"})
	assert.Equal(t, entity.RoleNone, identity.Role)

	assert.Nil(t, toIdentityDomain(nil))
	assert.Nil(t, fromIdentityDomain(nil))
}

func TestIdentityModel_BeforeCreateAssignsID(t *testing.T) {
	identityM := &model.IdentityModel{}
	require.NoError(t, identityM.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, identityM.ID)

	fixed := uuid.New()
	identityM = &model.IdentityModel{ID: fixed}
	require.NoError(t, identityM.BeforeCreate(nil))
	assert.Equal(t, fixed, identityM.ID)
}
